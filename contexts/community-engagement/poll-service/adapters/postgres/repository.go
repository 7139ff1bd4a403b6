package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"warden/contexts/community-engagement/poll-service/domain/entities"
	domainerrors "warden/contexts/community-engagement/poll-service/domain/errors"
)

// pollModel flattens options and votes into jsonb columns; polls are small and
// always rewritten whole.
type pollModel struct {
	AnchorID string `gorm:"primaryKey;column:anchor_id"`
	Question string `gorm:"column:question;not null"`
	Options  []byte `gorm:"column:options;type:jsonb;not null"`
	Votes    []byte `gorm:"column:votes;type:jsonb;not null"`
	AuthorID string `gorm:"column:author_id;not null"`
}

func (pollModel) TableName() string { return "polls" }

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Models lists the schema models for auto-migration at bootstrap.
func Models() []any {
	return []any{&pollModel{}}
}

func (r *Repository) Save(ctx context.Context, poll entities.Poll) error {
	model, err := toModel(poll)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "anchor_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"question", "options", "votes", "author_id"}),
		}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("save poll: %w", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, anchorID string) (entities.Poll, error) {
	var model pollModel
	err := r.db.WithContext(ctx).Where("anchor_id = ?", anchorID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Poll{}, domainerrors.ErrPollNotFound
	}
	if err != nil {
		return entities.Poll{}, fmt.Errorf("get poll: %w", err)
	}
	return toEntity(model)
}

func (r *Repository) Delete(ctx context.Context, anchorID string) error {
	result := r.db.WithContext(ctx).Where("anchor_id = ?", anchorID).Delete(&pollModel{})
	if result.Error != nil {
		return fmt.Errorf("delete poll: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPollNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]entities.Poll, error) {
	var models []pollModel
	err := r.db.WithContext(ctx).Order("anchor_id asc").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}
	polls := make([]entities.Poll, 0, len(models))
	for _, model := range models {
		poll, err := toEntity(model)
		if err != nil {
			return nil, err
		}
		polls = append(polls, poll)
	}
	return polls, nil
}

func toModel(poll entities.Poll) (pollModel, error) {
	options, err := json.Marshal(poll.Options)
	if err != nil {
		return pollModel{}, fmt.Errorf("encode poll options: %w", err)
	}
	votes, err := json.Marshal(poll.Votes)
	if err != nil {
		return pollModel{}, fmt.Errorf("encode poll votes: %w", err)
	}
	return pollModel{
		AnchorID: poll.AnchorID,
		Question: poll.Question,
		Options:  options,
		Votes:    votes,
		AuthorID: poll.AuthorID,
	}, nil
}

func toEntity(model pollModel) (entities.Poll, error) {
	poll := entities.Poll{
		AnchorID: model.AnchorID,
		Question: model.Question,
		AuthorID: model.AuthorID,
	}
	if err := json.Unmarshal(model.Options, &poll.Options); err != nil {
		return entities.Poll{}, fmt.Errorf("decode poll options: %w", err)
	}
	if err := json.Unmarshal(model.Votes, &poll.Votes); err != nil {
		return entities.Poll{}, fmt.Errorf("decode poll votes: %w", err)
	}
	if poll.Votes == nil {
		poll.Votes = make([][]string, len(poll.Options))
	}
	return poll, nil
}
