package custom

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"procurement.GO/api"
	gqlregistry "procurement.GO/graphql/registry"
)

func TestHealthRoute(t *testing.T) {
	e := echo.New()
	api.ApplyRoutes(e, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health status = %d, want 200", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %q, want ok", resp["status"])
	}
}

func TestStatusesExtension(t *testing.T) {
	out, err := gqlregistry.Resolve(context.Background(), "purchaseOrderStatuses", nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	b, _ := json.Marshal(out)
	if string(b) != `["PENDING","OPEN","COMPLETED","CANCELLED","REJECTED"]` {
		t.Errorf("statuses = %s", b)
	}
}
