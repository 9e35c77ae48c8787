package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	numberingdomain "github.com/smallbiznis/khata/internal/numbering/domain"
)

// CounterRouter sends each scope to the store that owns records of that
// type. Unrouted scopes go to the fallback counter.
type CounterRouter struct {
	fallback numberingdomain.Counter
	routes   map[string]numberingdomain.Counter
}

func NewCounterRouter(fallback numberingdomain.Counter) *CounterRouter {
	return &CounterRouter{
		fallback: fallback,
		routes:   map[string]numberingdomain.Counter{},
	}
}

func (r *CounterRouter) Route(scope string, counter numberingdomain.Counter) *CounterRouter {
	r.routes[scope] = counter
	return r
}

func (r *CounterRouter) CountInRange(ctx context.Context, orgID snowflake.ID, scope string, from, to time.Time) (int64, error) {
	counter, ok := r.routes[scope]
	if !ok {
		counter = r.fallback
	}
	if counter == nil {
		return 0, fmt.Errorf("no counter for scope %q", scope)
	}
	return counter.CountInRange(ctx, orgID, scope, from, to)
}
