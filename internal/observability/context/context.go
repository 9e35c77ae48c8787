package context

import (
	"context"
	"strings"
)

type requestIDKey struct{}
type orgIDKey struct{}

// WithRequestID stores the request identifier used for log correlation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, strings.TrimSpace(requestID))
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey{}).(string)
	return value
}

// WithOrgID stores the organization identifier as a log field value.
func WithOrgID(ctx context.Context, orgID string) context.Context {
	return context.WithValue(ctx, orgIDKey{}, strings.TrimSpace(orgID))
}

func OrgIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(orgIDKey{}).(string)
	return value
}

// RouteArea names the API area a gin route belongs to, such as "tax" for
// /v1/tax/breakdown. Routes outside /v1 report "system".
func RouteArea(route string) string {
	rest, ok := strings.CutPrefix(strings.TrimSpace(route), "/v1/")
	if !ok {
		return "system"
	}
	area, _, _ := strings.Cut(rest, "/")
	if area == "" {
		return "system"
	}
	return area
}
