package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	taxdomain "github.com/smallbiznis/khata/internal/tax/domain"
)

type validateRegistrationRequest struct {
	ID string `json:"id"`
}

func (s *Server) ComputeTaxBreakdown(c *gin.Context) {
	var req taxdomain.ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.taxSvc.Compute(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ValidateRegistration(c *gin.Context) {
	var req validateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.taxSvc.ValidateRegistrationID(c.Request.Context(), req.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SuggestCategories(c *gin.Context) {
	resp := s.taxSvc.SuggestCategory(c.Request.Context(), strings.TrimSpace(c.Query("q")))
	if resp == nil {
		resp = []taxdomain.Category{}
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
