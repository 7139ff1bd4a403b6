package ports

import (
	"context"

	"warden/contexts/community-engagement/poll-service/domain/entities"
)

type Repository interface {
	Save(ctx context.Context, poll entities.Poll) error
	Get(ctx context.Context, anchorID string) (entities.Poll, error)
	Delete(ctx context.Context, anchorID string) error
	List(ctx context.Context) ([]entities.Poll, error)
}

// Gateway publishes poll state to the chat platform. Failures are logged and
// never fail the vote that triggered them.
type Gateway interface {
	PublishTally(ctx context.Context, anchorID, question string, options []string, counts []int, closed bool) error
	AttachPollControls(ctx context.Context, anchorID string, optionCount int) error
}

type Locker interface {
	Lock(key string) func()
}
