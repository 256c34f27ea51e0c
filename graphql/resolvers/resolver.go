package resolvers

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"procurement.GO/core/auth"
	"procurement.GO/graphql"
	gqlmodels "procurement.GO/graphql/models"
	gqlregistry "procurement.GO/graphql/registry"
	poService "procurement.GO/service/purchaseorder"
)

var (
	errUnauthorized     = errors.New("unauthorized")
	errInternal         = errors.New("Internal server error")
	errSearchNotEnabled = errors.New("search is not configured")
)

// Searcher finds order ids by full-text query.
type Searcher interface {
	SearchIDs(ctx context.Context, organizationID uint, query string, size int) ([]uint, error)
}

// QueryResolver is the root resolver for every Query field.
type QueryResolver struct {
	orders   *poService.Service
	searcher Searcher
	log      *zap.Logger
}

// NewQueryResolver creates the root resolver. searcher may be nil.
func NewQueryResolver(orders *poService.Service, searcher Searcher, log *zap.Logger) *QueryResolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &QueryResolver{orders: orders, searcher: searcher, log: log}
}

func principal(ctx context.Context) (auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return auth.Principal{}, errUnauthorized
	}
	return p, nil
}

// organization picks the organizationId argument, falling back to the request default.
func organization(ctx context.Context, arg *int32) uint {
	if arg != nil && *arg > 0 {
		return uint(*arg)
	}
	return graphql.OrganizationIDFromContext(ctx)
}

// publicError passes client errors through and hides everything else.
func (r *QueryResolver) publicError(err error) error {
	if errors.Is(err, poService.ErrValidation) || errors.Is(err, poService.ErrForbidden) || errors.Is(err, poService.ErrNotFound) {
		return err
	}
	r.log.Error("graphql resolver failed", zap.Error(err))
	return errInternal
}

func (r *QueryResolver) PurchaseOrders(ctx context.Context, args graphql.PurchaseOrdersArgs) ([]*gqlmodels.PurchaseOrder, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	in := poService.ListInput{OrganizationID: organization(ctx, args.OrganizationID)}
	if args.Status != nil {
		in.Status = *args.Status
	}
	orders, err := r.orders.List(ctx, p, in)
	if err != nil {
		return nil, r.publicError(err)
	}
	out := make([]*gqlmodels.PurchaseOrder, 0, len(orders))
	for i := range orders {
		m, err := toPurchaseOrder(orders[i])
		if err != nil {
			return nil, r.publicError(err)
		}
		out = append(out, m)
	}
	return out, nil
}

// PurchaseOrder returns null for unknown or invisible ids.
func (r *QueryResolver) PurchaseOrder(ctx context.Context, args graphql.PurchaseOrderArgs) (*gqlmodels.PurchaseOrder, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	po, err := r.orders.Get(ctx, p, id)
	if errors.Is(err, poService.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.publicError(err)
	}
	m, err := toPurchaseOrder(po)
	if err != nil {
		return nil, r.publicError(err)
	}
	return m, nil
}

func (r *QueryResolver) SearchPurchaseOrders(ctx context.Context, args graphql.SearchPurchaseOrdersArgs) ([]*gqlmodels.PurchaseOrder, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if r.searcher == nil {
		return nil, errSearchNotEnabled
	}
	orgID, err := poService.ScopeOrganization(p, organization(ctx, args.OrganizationID))
	if err != nil {
		return nil, err
	}
	ids, err := r.searcher.SearchIDs(ctx, orgID, args.Query, int(args.PageSize))
	if err != nil {
		return nil, r.publicError(err)
	}

	out := make([]*gqlmodels.PurchaseOrder, 0, len(ids))
	for _, id := range ids {
		po, err := r.orders.Get(ctx, p, id)
		if errors.Is(err, poService.ErrNotFound) {
			// index can lag behind deletes
			continue
		}
		if err != nil {
			return nil, r.publicError(err)
		}
		m, err := toPurchaseOrder(po)
		if err != nil {
			return nil, r.publicError(err)
		}
		out = append(out, m)
	}
	return out, nil
}

// Extension dispatches to registered custom resolvers.
func (r *QueryResolver) Extension(ctx context.Context, args graphql.ExtensionArgs) (*string, error) {
	m := make(map[string]interface{})
	if args.Args != nil && *args.Args != "" {
		if err := json.Unmarshal([]byte(*args.Args), &m); err != nil {
			return nil, err
		}
	}
	out, err := gqlregistry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}
