package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	payrolldomain "github.com/smallbiznis/khata/internal/payroll/domain"
)

func (s *Server) ComputePayroll(c *gin.Context) {
	var req payrolldomain.ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.payrollSvc.Compute(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ProcessPayroll(c *gin.Context) {
	var req payrolldomain.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req.EmployeeCode = strings.TrimSpace(req.EmployeeCode)
	req.EmployeeName = strings.TrimSpace(req.EmployeeName)
	req.Period = strings.TrimSpace(req.Period)

	resp, err := s.payrollSvc.Process(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetPayroll(c *gin.Context) {
	resp, err := s.payrollSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPayslip(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	pdf, err := s.payrollSvc.Payslip(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", "payslip-"+id+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
