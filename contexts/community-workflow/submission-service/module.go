package submissionservice

import (
	"log/slog"

	httpadapter "warden/contexts/community-workflow/submission-service/adapters/http"
	"warden/contexts/community-workflow/submission-service/adapters/memory"
	"warden/contexts/community-workflow/submission-service/application/commands"
	"warden/contexts/community-workflow/submission-service/application/queries"
	"warden/contexts/community-workflow/submission-service/application/workers"
	"warden/contexts/community-workflow/submission-service/ports"
)

type Module struct {
	Handler     httpadapter.Handler
	Create      commands.CreateSubmissionUseCase
	Decide      commands.DecideSubmissionUseCase
	Recruitment commands.RecruitmentUseCase
	Reminder    workers.ReminderJob
	Store       *memory.Store
}

type Dependencies struct {
	Repository  ports.Repository
	Gateway     ports.Gateway
	Ledger      ports.Ledger
	Balances    ports.Balances
	Settings    ports.Settings
	Locker      ports.Locker
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	create := commands.CreateSubmissionUseCase{
		Repository: deps.Repository,
		Gateway:    deps.Gateway,
		Settings:   deps.Settings,
		Clock:      deps.Clock,
		IDGen:      deps.IDGenerator,
		Logger:     deps.Logger,
	}
	decide := commands.DecideSubmissionUseCase{
		Repository: deps.Repository,
		Gateway:    deps.Gateway,
		Ledger:     deps.Ledger,
		Settings:   deps.Settings,
		Locker:     deps.Locker,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	recruitment := commands.RecruitmentUseCase{
		Repository: deps.Repository,
		Gateway:    deps.Gateway,
		Logger:     deps.Logger,
	}
	reminder := workers.ReminderJob{
		Repository: deps.Repository,
		Gateway:    deps.Gateway,
		Settings:   deps.Settings,
		Locker:     deps.Locker,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Create:      create,
			Decide:      decide,
			Recruitment: recruitment,
			UserSubs:    queries.UserSubmissionsQuery{Repository: deps.Repository},
			Activity:    queries.ActivitySummaryQuery{Repository: deps.Repository, Balances: deps.Balances},
			Logger:      deps.Logger,
		},
		Create:      create,
		Decide:      decide,
		Recruitment: recruitment,
		Reminder:    reminder,
	}
}

// NewInMemoryModule wires the use cases against the in-memory store, which
// doubles as clock and ID generator.
func NewInMemoryModule(deps Dependencies, logger *slog.Logger) Module {
	store := memory.NewStore()
	deps.Repository = store
	deps.Clock = store
	deps.IDGenerator = store
	deps.Logger = logger
	module := NewModule(deps)
	module.Store = store
	return module
}
