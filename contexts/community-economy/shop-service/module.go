package shopservice

import (
	"log/slog"

	httpadapter "warden/contexts/community-economy/shop-service/adapters/http"
	"warden/contexts/community-economy/shop-service/adapters/memory"
	"warden/contexts/community-economy/shop-service/application"
	"warden/contexts/community-economy/shop-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository  ports.Repository
	Ledger      ports.Ledger
	Gateway     ports.Gateway
	Settings    ports.Settings
	Locker      ports.Locker
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:     deps.Repository,
		Ledger:   deps.Ledger,
		Gateway:  deps.Gateway,
		Settings: deps.Settings,
		Locker:   deps.Locker,
		IDGen:    deps.IDGenerator,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

// NewInMemoryModule wires the service against the in-memory store. The store
// doubles as the ID generator.
func NewInMemoryModule(deps Dependencies, logger *slog.Logger) Module {
	store := memory.NewStore()
	deps.Repository = store
	deps.IDGenerator = store
	deps.Logger = logger
	module := NewModule(deps)
	module.Store = store
	return module
}
