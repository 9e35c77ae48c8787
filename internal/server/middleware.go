package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/khata/internal/observability/context"
	"github.com/smallbiznis/khata/internal/orgcontext"
)

const HeaderOrg = "X-Org-ID"

// OrgContext resolves the org from the X-Org-ID header. A missing header is
// left to the services, which reject org-scoped calls without one.
func OrgContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderOrg))
		if raw == "" {
			c.Next()
			return
		}

		orgID, err := snowflake.ParseString(raw)
		if err != nil || orgID <= 0 {
			AbortWithError(c, newValidationError("org_id", "invalid_org_id", "invalid X-Org-ID header"))
			return
		}

		ctx := orgcontext.WithOrgID(c.Request.Context(), orgID)
		ctx = obscontext.WithOrgID(ctx, orgID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
