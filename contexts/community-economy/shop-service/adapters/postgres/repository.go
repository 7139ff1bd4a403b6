package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"warden/contexts/community-economy/shop-service/domain/entities"
	domainerrors "warden/contexts/community-economy/shop-service/domain/errors"
)

type itemModel struct {
	ItemID      string `gorm:"primaryKey;column:item_id"`
	Name        string `gorm:"column:name;not null"`
	Description string `gorm:"column:description"`
	Cost        int    `gorm:"column:cost;not null"`
	Category    string `gorm:"column:category;not null;index"`
	RoleRef     string `gorm:"column:role_ref"`
	Stock       *int   `gorm:"column:stock"`
}

func (itemModel) TableName() string { return "shop_items" }

type purchaseModel struct {
	UserID string `gorm:"primaryKey;column:user_id"`
	ItemID string `gorm:"primaryKey;column:item_id"`
}

func (purchaseModel) TableName() string { return "shop_purchases" }

// Repository is the gorm-backed shop store.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Models lists the schema models for auto-migration at bootstrap.
func Models() []any {
	return []any{&itemModel{}, &purchaseModel{}}
}

func (r *Repository) CreateItem(ctx context.Context, item entities.Item) error {
	model := toModel(item)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("create shop item: %w", err)
	}
	return nil
}

func (r *Repository) DeleteItem(ctx context.Context, itemID string) error {
	result := r.db.WithContext(ctx).Where("item_id = ?", itemID).Delete(&itemModel{})
	if result.Error != nil {
		return fmt.Errorf("delete shop item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrItemNotFound
	}
	return nil
}

func (r *Repository) GetItem(ctx context.Context, itemID string) (entities.Item, error) {
	var model itemModel
	err := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Item{}, domainerrors.ErrItemNotFound
	}
	if err != nil {
		return entities.Item{}, fmt.Errorf("get shop item: %w", err)
	}
	return toEntity(model), nil
}

func (r *Repository) ListItems(ctx context.Context, category entities.ItemCategory) ([]entities.Item, error) {
	var models []itemModel
	err := r.db.WithContext(ctx).
		Where("category = ?", string(category)).
		Order("cost asc, item_id asc").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list shop items: %w", err)
	}
	items := make([]entities.Item, 0, len(models))
	for _, m := range models {
		items = append(items, toEntity(m))
	}
	return items, nil
}

func (r *Repository) HasPurchase(ctx context.Context, userID, itemID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&purchaseModel{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check shop purchase: %w", err)
	}
	return count > 0, nil
}

// ApplyPurchase decrements tracked stock and records ownership in one
// transaction. The item row is locked FOR UPDATE so concurrent buyers across
// instances serialize on the database.
func (r *Repository) ApplyPurchase(ctx context.Context, userID string, item entities.Item) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model itemModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("item_id = ?", item.ItemID).
			First(&model).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrItemNotFound
		}
		if err != nil {
			return fmt.Errorf("lock shop item: %w", err)
		}
		if model.Stock != nil {
			if *model.Stock <= 0 {
				return domainerrors.ErrSoldOut
			}
			stock := *model.Stock - 1
			if err := tx.Model(&itemModel{}).
				Where("item_id = ?", item.ItemID).
				Update("stock", stock).Error; err != nil {
				return fmt.Errorf("decrement shop stock: %w", err)
			}
		}
		if item.Category.IsUniqueReward() {
			record := purchaseModel{UserID: userID, ItemID: item.ItemID}
			if err := tx.Create(&record).Error; err != nil {
				if isUniqueViolation(err) {
					return domainerrors.ErrAlreadyOwned
				}
				return fmt.Errorf("record shop purchase: %w", err)
			}
		}
		return nil
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func toModel(item entities.Item) itemModel {
	return itemModel{
		ItemID:      item.ItemID,
		Name:        item.Name,
		Description: item.Description,
		Cost:        item.Cost,
		Category:    string(item.Category),
		RoleRef:     item.RoleRef,
		Stock:       item.Stock,
	}
}

func toEntity(model itemModel) entities.Item {
	return entities.Item{
		ItemID:      model.ItemID,
		Name:        model.Name,
		Description: model.Description,
		Cost:        model.Cost,
		Category:    entities.ItemCategory(model.Category),
		RoleRef:     model.RoleRef,
		Stock:       model.Stock,
	}
}
