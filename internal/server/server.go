package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/khata/internal/config"
	documentdomain "github.com/smallbiznis/khata/internal/document/domain"
	"github.com/smallbiznis/khata/internal/observability"
	obsmiddleware "github.com/smallbiznis/khata/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/khata/internal/observability/metrics"
	obstracing "github.com/smallbiznis/khata/internal/observability/tracing"
	payrolldomain "github.com/smallbiznis/khata/internal/payroll/domain"
	reconciliationdomain "github.com/smallbiznis/khata/internal/reconciliation/domain"
	taxdomain "github.com/smallbiznis/khata/internal/tax/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) {
		s.RegisterAPIRoutes()
	}),
	fx.Invoke(RunHTTP),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.Middleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func RunHTTP(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine            *gin.Engine
	log               *zap.Logger
	taxSvc            taxdomain.Service
	payrollSvc        payrolldomain.Service
	documentSvc       documentdomain.Service
	reconciliationSvc reconciliationdomain.Service
}

type ServerParams struct {
	fx.In

	Gin               *gin.Engine
	Log               *zap.Logger
	TaxSvc            taxdomain.Service
	PayrollSvc        payrolldomain.Service
	DocumentSvc       documentdomain.Service
	ReconciliationSvc reconciliationdomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:            p.Gin,
		log:               p.Log.Named("http.server"),
		taxSvc:            p.TaxSvc,
		payrollSvc:        p.PayrollSvc,
		documentSvc:       p.DocumentSvc,
		reconciliationSvc: p.ReconciliationSvc,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/v1")
	api.Use(OrgContext())

	tax := api.Group("/tax")
	tax.POST("/breakdown", s.ComputeTaxBreakdown)
	tax.POST("/registrations/validate", s.ValidateRegistration)
	tax.GET("/categories", s.SuggestCategories)

	payroll := api.Group("/payroll")
	payroll.POST("/compute", s.ComputePayroll)
	payroll.POST("", s.ProcessPayroll)
	payroll.GET("/:id", s.GetPayroll)
	payroll.GET("/:id/payslip", s.GetPayslip)

	documents := api.Group("/documents")
	documents.POST("", s.CreateDocument)
	documents.GET("", s.ListDocuments)
	documents.GET("/:id", s.GetDocument)
	documents.POST("/:id/file", s.FileDocument)
	documents.GET("/:id/pdf", s.RenderDocument)

	reconciliation := api.Group("/reconciliation")
	reconciliation.POST("/proposals", s.ProposeMatches)
	reconciliation.POST("/statements", s.ProposeFromStatement)
}
