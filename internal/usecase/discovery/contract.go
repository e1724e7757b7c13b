package discovery

import (
	"context"

	"github.com/kbeauty/beautyfinder/internal/domain/shop"
	"github.com/kbeauty/beautyfinder/internal/planner"
)

// ShopFetcher executes an access plan against the shop store: active
// shops inside the plan's bounding box, narrowed by the predicates the
// chosen index resolves.
type ShopFetcher interface {
	FetchActiveShops(ctx context.Context, plan *planner.AccessPlan) ([]shop.Record, error)
}
