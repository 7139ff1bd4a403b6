package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"warden/contexts/community-economy/reputation-service/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountModel struct {
	UserID string `gorm:"column:user_id;primaryKey"`
	Points int    `gorm:"column:points;not null;default:0"`
}

func (accountModel) TableName() string { return "reputation_points" }

// Models returns the gorm models this adapter owns, for bootstrap migration.
func Models() []any {
	return []any{&accountModel{}}
}

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) AddPoints(ctx context.Context, userID string, delta int) (int, error) {
	userID = strings.TrimSpace(userID)
	var balance int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{"points": gorm.Expr("reputation_points.points + ?", delta)}),
		}).Create(&accountModel{UserID: userID, Points: delta}).Error; err != nil {
			return err
		}

		var row accountModel
		if err := tx.Where("user_id = ?", userID).First(&row).Error; err != nil {
			return err
		}
		balance = row.Points
		return nil
	})
	return balance, err
}

func (r *Repository) SetPoints(ctx context.Context, userID string, points int) (int, error) {
	userID = strings.TrimSpace(userID)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{"points": points}),
	}).Create(&accountModel{UserID: userID, Points: points}).Error
	if err != nil {
		return 0, err
	}
	return points, nil
}

func (r *Repository) GetPoints(ctx context.Context, userID string) (int, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.Points, nil
}

func (r *Repository) Top(ctx context.Context, limit int) ([]ports.Account, error) {
	var rows []accountModel
	err := r.db.WithContext(ctx).
		Order("points DESC, user_id ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	accounts := make([]ports.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, ports.Account{UserID: row.UserID, Points: row.Points})
	}
	return accounts, nil
}
