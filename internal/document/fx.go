package document

import (
	"github.com/smallbiznis/khata/internal/document/repository"
	"github.com/smallbiznis/khata/internal/document/service"
	"go.uber.org/fx"
)

var Module = fx.Module("document.service",
	fx.Provide(repository.Provide),
	fx.Provide(repository.NewLedgerLoader),
	fx.Provide(service.New),
)
