package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"warden/contexts/community-workflow/submission-service/domain/entities"
	domainerrors "warden/contexts/community-workflow/submission-service/domain/errors"
)

// submissionModel is shared by all five category tables; the table is chosen
// per call so each category keeps its own table as the schema requires.
type submissionModel struct {
	SubmissionID    string    `gorm:"primaryKey;column:submission_id"`
	Category        string    `gorm:"column:category;not null"`
	Scope           string    `gorm:"column:scope;not null"`
	ApplicationRole string    `gorm:"column:application_role"`
	SubmitterID     string    `gorm:"column:submitter_id;not null;index"`
	DisplayName     string    `gorm:"column:display_name"`
	Title           string    `gorm:"column:title;not null"`
	Fields          []byte    `gorm:"column:fields;type:jsonb"`
	ThreadRef       string    `gorm:"column:thread_ref"`
	Status          string    `gorm:"column:status;not null;index"`
	DecisionReason  string    `gorm:"column:decision_reason"`
	DecidedByID     string    `gorm:"column:decided_by_id"`
	ReminderSent    bool      `gorm:"column:reminder_sent;not null;default:false"`
	CreatedAt       time.Time `gorm:"column:created_at;not null"`
	UpdatedAt       time.Time `gorm:"column:updated_at;not null"`
}

type auditModel struct {
	AuditID      int64     `gorm:"primaryKey;autoIncrement;column:audit_id"`
	SubmissionID string    `gorm:"column:submission_id;not null;index"`
	Category     string    `gorm:"column:category;not null"`
	ActorID      string    `gorm:"column:actor_id;not null"`
	Action       string    `gorm:"column:action;not null"`
	Detail       string    `gorm:"column:detail"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
}

func (auditModel) TableName() string { return "submission_audits" }

type positionModel struct {
	Position string `gorm:"primaryKey;column:position"`
	Open     bool   `gorm:"column:open;not null"`
}

func (positionModel) TableName() string { return "recruitment_positions" }

func tableNameFor(category entities.Category) string {
	switch category {
	case entities.CategorySuggestion:
		return "suggestions"
	case entities.CategoryBugReport:
		return "bug_reports"
	case entities.CategoryComplaint:
		return "complaints"
	case entities.CategoryAppeal:
		return "appeals"
	default:
		return "applications"
	}
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the five category tables plus audits and recruitment state.
// The category tables share one model, so they are migrated by table name.
func Migrate(db *gorm.DB) error {
	for _, category := range entities.Categories() {
		if err := db.Table(tableNameFor(category)).AutoMigrate(&submissionModel{}); err != nil {
			return fmt.Errorf("migrate %s: %w", tableNameFor(category), err)
		}
	}
	return db.AutoMigrate(&auditModel{}, &positionModel{})
}

func (r *Repository) CreateSubmission(ctx context.Context, submission entities.Submission) error {
	model, err := toModel(submission)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Table(tableNameFor(submission.Category)).Create(&model).Error
	if err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

func (r *Repository) GetSubmission(ctx context.Context, category entities.Category, submissionID string) (entities.Submission, error) {
	var model submissionModel
	err := r.db.WithContext(ctx).
		Table(tableNameFor(category)).
		Where("submission_id = ?", submissionID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	if err != nil {
		return entities.Submission{}, fmt.Errorf("get submission: %w", err)
	}
	return toEntity(model)
}

func (r *Repository) UpdateSubmission(ctx context.Context, submission entities.Submission) error {
	model, err := toModel(submission)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Table(tableNameFor(submission.Category)).
		Where("submission_id = ?", submission.SubmissionID).
		Updates(map[string]any{
			"status":          model.Status,
			"decision_reason": model.DecisionReason,
			"decided_by_id":   model.DecidedByID,
			"reminder_sent":   model.ReminderSent,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("update submission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSubmissionNotFound
	}
	return nil
}

func (r *Repository) ListBySubmitter(ctx context.Context, submitterID string) (map[entities.Category][]entities.Submission, error) {
	out := make(map[entities.Category][]entities.Submission)
	for _, category := range entities.Categories() {
		var models []submissionModel
		err := r.db.WithContext(ctx).
			Table(tableNameFor(category)).
			Where("submitter_id = ?", submitterID).
			Order("created_at asc").
			Find(&models).Error
		if err != nil {
			return nil, fmt.Errorf("list submissions for %s: %w", category, err)
		}
		for _, model := range models {
			submission, err := toEntity(model)
			if err != nil {
				return nil, err
			}
			out[category] = append(out[category], submission)
		}
	}
	return out, nil
}

func (r *Repository) CountBySubmitter(ctx context.Context, submitterID string) (map[entities.Category]int, error) {
	counts := make(map[entities.Category]int)
	for _, category := range entities.Categories() {
		var count int64
		err := r.db.WithContext(ctx).
			Table(tableNameFor(category)).
			Where("submitter_id = ?", submitterID).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("count submissions for %s: %w", category, err)
		}
		if count > 0 {
			counts[category] = int(count)
		}
	}
	return counts, nil
}

func (r *Repository) ListStale(ctx context.Context, cutoff time.Time) ([]entities.Submission, error) {
	terminal := []string{
		string(entities.StatusAccepted),
		string(entities.StatusResolved),
		string(entities.StatusRejected),
	}
	var stale []entities.Submission
	for _, category := range entities.Categories() {
		var models []submissionModel
		err := r.db.WithContext(ctx).
			Table(tableNameFor(category)).
			Where("status NOT IN ?", terminal).
			Where("reminder_sent = ?", false).
			Where("created_at < ?", cutoff).
			Order("created_at asc").
			Find(&models).Error
		if err != nil {
			return nil, fmt.Errorf("list stale %s: %w", category, err)
		}
		for _, model := range models {
			submission, err := toEntity(model)
			if err != nil {
				return nil, err
			}
			stale = append(stale, submission)
		}
	}
	return stale, nil
}

func (r *Repository) MarkReminderSent(ctx context.Context, category entities.Category, submissionID string) error {
	result := r.db.WithContext(ctx).
		Table(tableNameFor(category)).
		Where("submission_id = ?", submissionID).
		Update("reminder_sent", true)
	if result.Error != nil {
		return fmt.Errorf("mark reminder sent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSubmissionNotFound
	}
	return nil
}

func (r *Repository) AppendAudit(ctx context.Context, audit entities.DecisionAudit) error {
	model := auditModel{
		SubmissionID: audit.SubmissionID,
		Category:     string(audit.Category),
		ActorID:      audit.ActorID,
		Action:       audit.Action,
		Detail:       audit.Detail,
		CreatedAt:    audit.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("append audit: %w", err)
	}
	return nil
}

func (r *Repository) SetPositionOpen(ctx context.Context, position entities.ApplicationRole, open bool) error {
	model := positionModel{Position: string(position), Open: open}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "position"}},
			DoUpdates: clause.AssignmentColumns([]string{"open"}),
		}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("set position open: %w", err)
	}
	return nil
}

func (r *Repository) IsPositionOpen(ctx context.Context, position entities.ApplicationRole) (bool, error) {
	var model positionModel
	err := r.db.WithContext(ctx).Where("position = ?", string(position)).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("get position: %w", err)
	}
	return model.Open, nil
}

func (r *Repository) ListPositions(ctx context.Context) ([]entities.RecruitmentPosition, error) {
	var models []positionModel
	err := r.db.WithContext(ctx).Order("position asc").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	out := make([]entities.RecruitmentPosition, 0, len(models))
	for _, model := range models {
		out = append(out, entities.RecruitmentPosition{
			Position: entities.ApplicationRole(model.Position),
			Open:     model.Open,
		})
	}
	return out, nil
}

func toModel(submission entities.Submission) (submissionModel, error) {
	fields, err := json.Marshal(submission.Fields)
	if err != nil {
		return submissionModel{}, fmt.Errorf("encode submission fields: %w", err)
	}
	return submissionModel{
		SubmissionID:    submission.SubmissionID,
		Category:        string(submission.Category),
		Scope:           string(submission.Scope),
		ApplicationRole: string(submission.ApplicationRole),
		SubmitterID:     submission.SubmitterID,
		DisplayName:     submission.DisplayName,
		Title:           submission.Title,
		Fields:          fields,
		ThreadRef:       submission.ThreadRef,
		Status:          string(submission.Status),
		DecisionReason:  submission.DecisionReason,
		DecidedByID:     submission.DecidedByID,
		ReminderSent:    submission.ReminderSent,
		CreatedAt:       submission.CreatedAt,
		UpdatedAt:       submission.UpdatedAt,
	}, nil
}

func toEntity(model submissionModel) (entities.Submission, error) {
	submission := entities.Submission{
		SubmissionID:    model.SubmissionID,
		Category:        entities.Category(model.Category),
		Scope:           entities.Scope(model.Scope),
		ApplicationRole: entities.ApplicationRole(model.ApplicationRole),
		SubmitterID:     model.SubmitterID,
		DisplayName:     model.DisplayName,
		Title:           model.Title,
		ThreadRef:       model.ThreadRef,
		Status:          entities.Status(model.Status),
		DecisionReason:  model.DecisionReason,
		DecidedByID:     model.DecidedByID,
		ReminderSent:    model.ReminderSent,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
	if len(model.Fields) > 0 {
		if err := json.Unmarshal(model.Fields, &submission.Fields); err != nil {
			return entities.Submission{}, fmt.Errorf("decode submission fields: %w", err)
		}
	}
	return submission, nil
}
