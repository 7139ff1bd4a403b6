package entities

// ItemCategory is the fixed catalog taxonomy. unique_role items grant a role
// automatically and may be bought at most once per user; the middle four are
// fulfilled manually by staff.
type ItemCategory string

const (
	CategoryUniqueRole ItemCategory = "unique_role"
	CategoryVIP        ItemCategory = "vip"
	CategoryPremium    ItemCategory = "premium"
	CategoryPerks      ItemCategory = "perks"
	CategoryDailyDeal  ItemCategory = "daily_deal"
	CategoryOther      ItemCategory = "other"
)

func ParseItemCategory(raw string) (ItemCategory, bool) {
	switch ItemCategory(raw) {
	case CategoryUniqueRole, CategoryVIP, CategoryPremium, CategoryPerks, CategoryDailyDeal, CategoryOther:
		return ItemCategory(raw), true
	default:
		return "", false
	}
}

func ItemCategories() []ItemCategory {
	return []ItemCategory{
		CategoryUniqueRole,
		CategoryVIP,
		CategoryPremium,
		CategoryPerks,
		CategoryDailyDeal,
		CategoryOther,
	}
}

// RequiresManualNotice reports whether a purchase in this category alerts the
// shop channel so staff can hand the reward over.
func (c ItemCategory) RequiresManualNotice() bool {
	switch c {
	case CategoryVIP, CategoryPremium, CategoryPerks, CategoryDailyDeal:
		return true
	default:
		return false
	}
}

// IsUniqueReward reports whether the category enforces one purchase per
// (user, item) pair.
func (c ItemCategory) IsUniqueReward() bool {
	return c == CategoryUniqueRole
}

// Item is a purchasable catalog entry. Stock == nil means unlimited; RoleRef
// empty means manual fulfillment.
type Item struct {
	ItemID      string
	Name        string
	Description string
	Cost        int
	Category    ItemCategory
	RoleRef     string
	Stock       *int
}

func (i Item) StockTracked() bool {
	return i.Stock != nil
}

// Purchase marks that a user owns an item. Only recorded for unique-reward
// categories, where it backs the at-most-once rule.
type Purchase struct {
	UserID string
	ItemID string
}
