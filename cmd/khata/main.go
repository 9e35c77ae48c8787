package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/khata/internal/clock"
	"github.com/smallbiznis/khata/internal/config"
	"github.com/smallbiznis/khata/internal/document"
	documentdomain "github.com/smallbiznis/khata/internal/document/domain"
	documentrepo "github.com/smallbiznis/khata/internal/document/repository"
	"github.com/smallbiznis/khata/internal/migration"
	"github.com/smallbiznis/khata/internal/numbering"
	numberingdomain "github.com/smallbiznis/khata/internal/numbering/domain"
	numberingrepo "github.com/smallbiznis/khata/internal/numbering/repository"
	"github.com/smallbiznis/khata/internal/observability"
	"github.com/smallbiznis/khata/internal/payroll"
	payrolldomain "github.com/smallbiznis/khata/internal/payroll/domain"
	payrollrepo "github.com/smallbiznis/khata/internal/payroll/repository"
	"github.com/smallbiznis/khata/internal/providers/pdf"
	"github.com/smallbiznis/khata/internal/reconciliation"
	"github.com/smallbiznis/khata/internal/server"
	"github.com/smallbiznis/khata/internal/tax"
	"github.com/smallbiznis/khata/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		pdf.Module,

		// Functional Domains
		tax.Module,
		numbering.Module,
		fx.Provide(ProvideCounter),
		document.Module,
		payroll.Module,
		reconciliation.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.NodeID)
}

// ProvideCounter routes payslip numbers to the payroll table and every other
// document type to the documents table.
func ProvideCounter(conn *gorm.DB, docRepo documentdomain.Repository, payrollRepo payrolldomain.Repository) numberingdomain.Counter {
	return numberingrepo.NewCounterRouter(documentrepo.NewCounter(conn, docRepo)).
		Route(payrolldomain.PayslipPrefix, payrollrepo.NewCounter(conn, payrollRepo))
}
