package pollservice

import (
	"log/slog"

	httpadapter "warden/contexts/community-engagement/poll-service/adapters/http"
	"warden/contexts/community-engagement/poll-service/adapters/memory"
	"warden/contexts/community-engagement/poll-service/application"
	"warden/contexts/community-engagement/poll-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Gateway    ports.Gateway
	Locker     ports.Locker
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:    deps.Repository,
		Gateway: deps.Gateway,
		Locker:  deps.Locker,
		Logger:  deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(deps Dependencies, logger *slog.Logger) Module {
	store := memory.NewStore()
	deps.Repository = store
	deps.Logger = logger
	module := NewModule(deps)
	module.Store = store
	return module
}
