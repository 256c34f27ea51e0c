package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"procurement.GO/api"
	"procurement.GO/core/auth"
	"procurement.GO/model/modeltest"
	poService "procurement.GO/service/purchaseorder"
)

const testSecret = "graphql-secret"

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func setup(t *testing.T) (*echo.Echo, *api.Deps, uint) {
	t.Helper()
	db := modeltest.NewDB(t)
	supplier := modeltest.SeedSupplier(t, db, 1, "Acme")
	item := modeltest.SeedItem(t, db, 1, "SKU-1")
	modeltest.SeedSupplierItem(t, db, supplier.ID, item.ID, "3.30")

	deps := api.NewDeps(db, nil, nil)
	po, err := deps.PurchaseOrders.Create(context.Background(), auth.Principal{ID: 2, Role: auth.RoleAdmin, OrganizationID: 1}, poService.CreateInput{
		SupplierID: supplier.ID,
		PurchaseOrderItems: []poService.LineInput{
			{ItemID: item.ID, Quantity: 4, UnitPrice: decimal.RequireFromString("3.25"), ItemName: "Bolt"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	e := echo.New()
	RegisterGraphQLRoutes(e.Group("/api", auth.Middleware(testSecret)), deps)
	return e, deps, po.ID
}

func query(t *testing.T, e *echo.Echo, p auth.Principal, q string, vars map[string]interface{}, header map[string]string) gqlResponse {
	t.Helper()
	tok, err := auth.IssueToken(testSecret, p, time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	body, _ := json.Marshal(GraphQLRequest{Query: q, Variables: vars})
	req := httptest.NewRequest(http.MethodPost, "/api/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var out gqlResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestPurchaseOrdersQuery_Enriched(t *testing.T) {
	e, _, _ := setup(t)
	out := query(t, e, auth.Principal{ID: 3, Role: auth.RoleViewer, OrganizationID: 1}, `{
		purchaseOrders(status: "PENDING") {
			id orderNumber status totalAmount
			items { itemName quantity unitPrice totalPrice receivedQuantity supplierUnitPrice }
		}
	}`, nil, nil)
	if len(out.Errors) > 0 {
		t.Fatalf("errors: %+v", out.Errors)
	}
	var data struct {
		PurchaseOrders []struct {
			ID          string   `json:"id"`
			Status      string   `json:"status"`
			TotalAmount *float64 `json:"totalAmount"`
			Items       []struct {
				ItemName          string   `json:"itemName"`
				TotalPrice        float64  `json:"totalPrice"`
				ReceivedQuantity  *float64 `json:"receivedQuantity"`
				SupplierUnitPrice *float64 `json:"supplierUnitPrice"`
			} `json:"items"`
		} `json:"purchaseOrders"`
	}
	if err := json.Unmarshal(out.Data, &data); err != nil {
		t.Fatalf("data: %v", err)
	}
	if len(data.PurchaseOrders) != 1 {
		t.Fatalf("orders = %d, want 1", len(data.PurchaseOrders))
	}
	po := data.PurchaseOrders[0]
	if po.Status != "PENDING" || po.TotalAmount == nil || *po.TotalAmount != 13 {
		t.Errorf("order = %+v", po)
	}
	line := po.Items[0]
	if line.ItemName != "Bolt" || line.TotalPrice != 13 || line.ReceivedQuantity != nil {
		t.Errorf("line = %+v", line)
	}
	if line.SupplierUnitPrice == nil || *line.SupplierUnitPrice != 3.3 {
		t.Errorf("supplierUnitPrice = %v, want 3.3", line.SupplierUnitPrice)
	}
}

func TestPurchaseOrderQuery(t *testing.T) {
	e, _, id := setup(t)
	q := `query($id: ID!) { purchaseOrder(id: $id) { id organizationId items { id } } }`
	vars := map[string]interface{}{"id": strconv.FormatUint(uint64(id), 10)}

	out := query(t, e, auth.Principal{ID: 3, Role: auth.RoleStaff, OrganizationID: 1}, q, vars, nil)
	if len(out.Errors) > 0 {
		t.Fatalf("errors: %+v", out.Errors)
	}
	var data struct {
		PurchaseOrder *struct {
			ID             string `json:"id"`
			OrganizationID int    `json:"organizationId"`
		} `json:"purchaseOrder"`
	}
	json.Unmarshal(out.Data, &data)
	if data.PurchaseOrder == nil || data.PurchaseOrder.ID != vars["id"] || data.PurchaseOrder.OrganizationID != 1 {
		t.Errorf("purchaseOrder = %+v", data.PurchaseOrder)
	}

	out = query(t, e, auth.Principal{ID: 9, Role: auth.RoleStaff, OrganizationID: 2}, q, vars, nil)
	json.Unmarshal(out.Data, &data)
	if len(out.Errors) > 0 || data.PurchaseOrder != nil {
		t.Errorf("other organization should see null, got %+v errors %+v", data.PurchaseOrder, out.Errors)
	}
}

func TestPurchaseOrdersQuery_SuperAdminNeedsOrganization(t *testing.T) {
	e, _, _ := setup(t)
	super := auth.Principal{ID: 1, Role: auth.RoleSuperAdmin}

	out := query(t, e, super, `{ purchaseOrders { id } }`, nil, nil)
	if len(out.Errors) == 0 || out.Errors[0].Message != "organizationId is required" {
		t.Errorf("errors = %+v, want organizationId is required", out.Errors)
	}

	out = query(t, e, super, `{ purchaseOrders { id } }`, nil, map[string]string{"Organization": "1"})
	if len(out.Errors) > 0 {
		t.Errorf("Organization header should scope the query: %+v", out.Errors)
	}
}

func TestSearchPurchaseOrders_NotConfigured(t *testing.T) {
	e, _, _ := setup(t)
	out := query(t, e, auth.Principal{ID: 3, Role: auth.RoleStaff, OrganizationID: 1}, `{ searchPurchaseOrders(query: "bolt") { id } }`, nil, nil)
	if len(out.Errors) == 0 || out.Errors[0].Message != "search is not configured" {
		t.Errorf("errors = %+v", out.Errors)
	}
}

func TestExtension_Statuses(t *testing.T) {
	e, _, _ := setup(t)
	out := query(t, e, auth.Principal{ID: 3, Role: auth.RoleStaff, OrganizationID: 1}, `{ _extension(name: "purchaseOrderStatuses") }`, nil, nil)
	if len(out.Errors) > 0 {
		t.Fatalf("errors: %+v", out.Errors)
	}
	var data struct {
		Extension string `json:"_extension"`
	}
	json.Unmarshal(out.Data, &data)
	var statuses []string
	if err := json.Unmarshal([]byte(data.Extension), &statuses); err != nil || len(statuses) != 5 {
		t.Errorf("_extension = %q", data.Extension)
	}
}
