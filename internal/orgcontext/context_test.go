package orgcontext

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
)

func TestOrgIDRoundTrip(t *testing.T) {
	ctx := WithOrgID(context.Background(), snowflake.ID(42))

	orgID, ok := OrgIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, snowflake.ID(42), orgID)
}

func TestOrgIDMissing(t *testing.T) {
	_, ok := OrgIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = OrgIDFromContext(WithOrgID(context.Background(), 0))
	assert.False(t, ok)
}

func TestOrgIDFromStringValue(t *testing.T) {
	ctx := context.WithValue(context.Background(), OrgContextKey{}, " 1234 ")

	orgID, ok := OrgIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, snowflake.ID(1234), orgID)
}
