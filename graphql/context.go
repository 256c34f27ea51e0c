package graphql

import (
	"context"
	"net/http"
	"strconv"
)

type contextKey string

const CtxKeyOrganizationID contextKey = "organizationID"

// Default organization for queries that omit organizationId.
// Resolved from: Organization header > __Organization query param.
const (
	HeaderOrganization     = "Organization"
	QueryParamOrganization = "__Organization"
)

// OrganizationIDFromContext returns the default organization of the request, or 0.
func OrganizationIDFromContext(ctx context.Context) uint {
	if id, ok := ctx.Value(CtxKeyOrganizationID).(uint); ok {
		return id
	}
	return 0
}

func WithOrganizationID(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, CtxKeyOrganizationID, id)
}

// GetOrganizationID extracts the default organization from the request.
func GetOrganizationID(r *http.Request) uint {
	if h := r.Header.Get(HeaderOrganization); h != "" {
		if id, err := strconv.ParseUint(h, 10, 32); err == nil {
			return uint(id)
		}
	}
	if q := r.URL.Query().Get(QueryParamOrganization); q != "" {
		if id, err := strconv.ParseUint(q, 10, 32); err == nil {
			return uint(id)
		}
	}
	return 0
}

// OrganizationMiddleware stores the request's default organization on the context.
func OrganizationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := GetOrganizationID(r); id != 0 {
			r = r.WithContext(WithOrganizationID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
