package resolvers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/mitchellh/mapstructure"

	gqlmodels "procurement.GO/graphql/models"
)

func numberToStringHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.String {
			return data, nil
		}
		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return fmt.Sprint(data), nil
		}
		return data, nil
	}
}

var toModelDecodeHook = mapstructure.ComposeDecodeHookFunc(
	numberToStringHook(),
)

// toPurchaseOrder converts an order (entity or enriched) through its JSON form, so
// the GraphQL model sees exactly what the REST API returns.
func toPurchaseOrder(v interface{}) (*gqlmodels.PurchaseOrder, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	// UseNumber keeps large ids out of float64 exponent form.
	var flat map[string]interface{}
	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()
	if err := d.Decode(&flat); err != nil {
		return nil, err
	}

	var po gqlmodels.PurchaseOrder
	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       toModelDecodeHook,
		Result:           &po,
		TagName:          "mapstructure",
		ZeroFields:       true,
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(flat); err != nil {
		return nil, err
	}
	if po.Items == nil {
		po.Items = []*gqlmodels.PurchaseOrderItem{}
	}
	return &po, nil
}

func parseID(id gql.ID) (uint, error) {
	n, err := strconv.ParseUint(string(id), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid purchase order id %q", string(id))
	}
	return uint(n), nil
}
