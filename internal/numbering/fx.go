package numbering

import (
	"github.com/smallbiznis/khata/internal/numbering/lock"
	"github.com/smallbiznis/khata/internal/numbering/repository"
	"github.com/smallbiznis/khata/internal/numbering/service"
	"go.uber.org/fx"
)

var Module = fx.Module("numbering.service",
	lock.Module,
	fx.Provide(repository.NewSequenceRepository),
	fx.Provide(service.NewService),
)
