package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	reconciliationdomain "github.com/smallbiznis/khata/internal/reconciliation/domain"
)

// maxStatementBytes bounds uploaded statements.
const maxStatementBytes = 8 << 20

func (s *Server) ProposeMatches(c *gin.Context) {
	var req reconciliationdomain.ProposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.reconciliationSvc.Propose(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ProposeFromStatement accepts a raw CSV statement as the request body.
func (s *Server) ProposeFromStatement(c *gin.Context) {
	strategy := reconciliationdomain.Strategy(strings.ToLower(strings.TrimSpace(c.Query("strategy"))))
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxStatementBytes)

	resp, err := s.reconciliationSvc.ProposeFromStatement(c.Request.Context(), body, strategy)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
