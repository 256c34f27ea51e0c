package search

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	poEntity "procurement.GO/model/entity/purchaseorder"
)

type recorded struct {
	method string
	path   string
	body   string
}

// fakeCluster answers like Elasticsearch and records every request.
func fakeCluster(t *testing.T, status int, respBody string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{method: r.Method, path: r.URL.Path, body: string(b)})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, respBody)
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func sampleOrder() *poEntity.PurchaseOrder {
	remarks := "urgent"
	return &poEntity.PurchaseOrder{
		ID:             7,
		OrganizationID: 1,
		SupplierID:     2,
		OrderNumber:    "PO-123",
		Status:         poEntity.StatusOpen,
		TotalAmount:    decimal.NewNullDecimal(decimal.RequireFromString("12.5")),
		Remarks:        &remarks,
		PurchaseOrderItems: []poEntity.PurchaseOrderItem{
			{ID: 1, ItemName: "Bolt"},
			{ID: 2},
		},
	}
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(sampleOrder())
	if doc.TotalAmount != "12.5" {
		t.Errorf("TotalAmount = %q, want 12.5", doc.TotalAmount)
	}
	if doc.LineCount != 2 || len(doc.ItemNames) != 1 {
		t.Errorf("lines = %d names = %v", doc.LineCount, doc.ItemNames)
	}
	if doc.Remarks != "urgent" || doc.Status != "OPEN" {
		t.Errorf("unexpected doc %+v", doc)
	}
}

func TestElasticIndexer_Index(t *testing.T) {
	srv, reqs := fakeCluster(t, http.StatusCreated, `{"result":"created"}`)
	ix, err := NewElasticIndexer(srv.URL, "test")
	if err != nil {
		t.Fatalf("NewElasticIndexer: %v", err)
	}

	if err := ix.Index(context.Background(), sampleOrder()); err != nil {
		t.Fatalf("Index: %v", err)
	}
	if len(*reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(*reqs))
	}
	got := (*reqs)[0]
	if got.method != http.MethodPut || got.path != "/test_purchase_orders/_doc/7" {
		t.Errorf("request = %s %s", got.method, got.path)
	}
	var doc Document
	if err := json.Unmarshal([]byte(got.body), &doc); err != nil {
		t.Fatalf("body: %v", err)
	}
	if doc.OrderNumber != "PO-123" {
		t.Errorf("order_number = %q", doc.OrderNumber)
	}
}

func TestElasticIndexer_IndexErrorStatus(t *testing.T) {
	srv, _ := fakeCluster(t, http.StatusInternalServerError, `{"error":"boom"}`)
	ix, _ := NewElasticIndexer(srv.URL, "test")
	if err := ix.Index(context.Background(), sampleOrder()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestElasticIndexer_DeleteMissingIsNotError(t *testing.T) {
	srv, reqs := fakeCluster(t, http.StatusNotFound, `{"result":"not_found"}`)
	ix, _ := NewElasticIndexer(srv.URL, "test")
	if err := ix.Delete(context.Background(), 7); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if (*reqs)[0].method != http.MethodDelete {
		t.Errorf("method = %s", (*reqs)[0].method)
	}
}

func TestElasticIndexer_BulkIndex(t *testing.T) {
	srv, reqs := fakeCluster(t, http.StatusOK, `{"errors":true,"items":[{"index":{"status":201}},{"index":{"status":400}}]}`)
	ix, _ := NewElasticIndexer(srv.URL, "")

	a, b := *sampleOrder(), *sampleOrder()
	b.ID = 8
	n, err := ix.BulkIndex(context.Background(), []poEntity.PurchaseOrder{a, b})
	if err != nil {
		t.Fatalf("BulkIndex: %v", err)
	}
	if n != 1 {
		t.Errorf("accepted = %d, want 1", n)
	}

	body := (*reqs)[0].body
	sc := bufio.NewScanner(strings.NewReader(body))
	lines := 0
	for sc.Scan() {
		lines++
	}
	if lines != 4 {
		t.Errorf("ndjson lines = %d, want 4", lines)
	}
	if !strings.Contains(body, `"_index":"procurement_purchase_orders"`) {
		t.Errorf("bulk body missing default index: %s", body)
	}
}

func TestElasticIndexer_SearchIDs(t *testing.T) {
	srv, reqs := fakeCluster(t, http.StatusOK, `{"hits":{"hits":[{"_source":{"id":9}},{"_source":{"id":3}}]}}`)
	ix, _ := NewElasticIndexer(srv.URL, "test")

	ids, err := ix.SearchIDs(context.Background(), 1, "bolt", 0)
	if err != nil {
		t.Fatalf("SearchIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != 9 || ids[1] != 3 {
		t.Errorf("ids = %v, want [9 3]", ids)
	}
	got := (*reqs)[0]
	if got.path != "/test_purchase_orders/_search" {
		t.Errorf("path = %s", got.path)
	}
	if !strings.Contains(got.body, `"organization_id":1`) {
		t.Errorf("query not scoped to organization: %s", got.body)
	}
}
