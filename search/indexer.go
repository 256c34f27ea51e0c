package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	poEntity "procurement.GO/model/entity/purchaseorder"
)

// Document is the searchable projection of a purchase order.
type Document struct {
	ID             uint       `json:"id"`
	OrganizationID uint       `json:"organization_id"`
	SupplierID     uint       `json:"supplier_id"`
	OrderNumber    string     `json:"order_number"`
	Status         string     `json:"status"`
	TotalAmount    string     `json:"total_amount,omitempty"`
	OrderDate      *time.Time `json:"order_date,omitempty"`
	ExpectedDate   *time.Time `json:"expected_date,omitempty"`
	ReceivedDate   *time.Time `json:"received_date,omitempty"`
	Remarks        string     `json:"remarks,omitempty"`
	ItemNames      []string   `json:"item_names"`
	LineCount      int        `json:"line_count"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func NewDocument(po *poEntity.PurchaseOrder) Document {
	doc := Document{
		ID:             po.ID,
		OrganizationID: po.OrganizationID,
		SupplierID:     po.SupplierID,
		OrderNumber:    po.OrderNumber,
		Status:         string(po.Status),
		OrderDate:      po.OrderDate,
		ExpectedDate:   po.ExpectedDate,
		ReceivedDate:   po.ReceivedDate,
		ItemNames:      make([]string, 0, len(po.PurchaseOrderItems)),
		LineCount:      len(po.PurchaseOrderItems),
		UpdatedAt:      po.UpdatedAt,
	}
	if po.TotalAmount.Valid {
		doc.TotalAmount = po.TotalAmount.Decimal.String()
	}
	if po.Remarks != nil {
		doc.Remarks = *po.Remarks
	}
	for _, line := range po.PurchaseOrderItems {
		if line.ItemName != "" {
			doc.ItemNames = append(doc.ItemNames, line.ItemName)
		}
	}
	return doc
}

// ElasticIndexer writes purchase orders to <prefix>_purchase_orders.
type ElasticIndexer struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticIndexer(host, prefix string) (*ElasticIndexer, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{host},
	})
	if err != nil {
		return nil, err
	}
	return &ElasticIndexer{client: client, index: IndexName(prefix)}, nil
}

func IndexName(prefix string) string {
	if prefix == "" {
		prefix = "procurement"
	}
	return fmt.Sprintf("%s_purchase_orders", prefix)
}

func (ix *ElasticIndexer) Index(ctx context.Context, po *poEntity.PurchaseOrder) error {
	body, err := json.Marshal(NewDocument(po))
	if err != nil {
		return err
	}
	res, err := ix.client.Index(
		ix.index,
		bytes.NewReader(body),
		ix.client.Index.WithContext(ctx),
		ix.client.Index.WithDocumentID(strconv.FormatUint(uint64(po.ID), 10)),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}
	return nil
}

// Delete removes an order document; a missing document is not an error.
func (ix *ElasticIndexer) Delete(ctx context.Context, id uint) error {
	res, err := ix.client.Delete(
		ix.index,
		strconv.FormatUint(uint64(id), 10),
		ix.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}
	return nil
}

// BulkIndex writes many orders with a single _bulk request and returns how many
// the cluster accepted.
func (ix *ElasticIndexer) BulkIndex(ctx context.Context, orders []poEntity.PurchaseOrder) (int, error) {
	if len(orders) == 0 {
		return 0, nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i := range orders {
		meta := map[string]interface{}{
			"index": map[string]interface{}{
				"_index": ix.index,
				"_id":    strconv.FormatUint(uint64(orders[i].ID), 10),
			},
		}
		if err := enc.Encode(meta); err != nil {
			return 0, err
		}
		if err := enc.Encode(NewDocument(&orders[i])); err != nil {
			return 0, err
		}
	}

	res, err := ix.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		ix.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Status int `json:"status"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulkResp); err != nil {
		return 0, err
	}
	ok := 0
	for _, item := range bulkResp.Items {
		for _, r := range item {
			if r.Status >= 200 && r.Status < 300 {
				ok++
			}
		}
	}
	return ok, nil
}

// SearchIDs runs a full-text query over one organization's orders and returns the
// matching order ids, best match first.
func (ix *ElasticIndexer) SearchIDs(ctx context.Context, organizationID uint, query string, size int) ([]uint, error) {
	if size <= 0 {
		size = 20
	}
	body := map[string]interface{}{
		"size":    size,
		"_source": []string{"id"},
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"multi_match": map[string]interface{}{
							"query":  query,
							"fields": []string{"order_number^3", "item_names^2", "remarks", "status"},
						},
					},
				},
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"organization_id": organizationID}},
				},
			},
		},
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	res, err := ix.client.Search(
		ix.client.Search.WithContext(ctx),
		ix.client.Search.WithIndex(ix.index),
		ix.client.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID uint `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	return ids, nil
}
