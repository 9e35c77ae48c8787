package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	documentdomain "github.com/smallbiznis/khata/internal/document/domain"
	"github.com/smallbiznis/khata/pkg/db/pagination"
)

func (s *Server) CreateDocument(c *gin.Context) {
	var req documentdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req.DocumentType = strings.TrimSpace(req.DocumentType)
	req.Description = strings.TrimSpace(req.Description)

	resp, err := s.documentSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListDocuments(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Kind string `form:"kind"`
		From string `form:"from"`
		To   string `form:"to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	from, to, err := parseDateRange(query.From, query.To)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.documentSvc.List(c.Request.Context(), documentdomain.ListRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		Kind:      documentdomain.Kind(strings.ToLower(strings.TrimSpace(query.Kind))),
		From:      from,
		To:        to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDocument(c *gin.Context) {
	resp, err := s.documentSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) FileDocument(c *gin.Context) {
	resp, err := s.documentSvc.File(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RenderDocument(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	pdf, err := s.documentSvc.Render(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", "document-"+id+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
