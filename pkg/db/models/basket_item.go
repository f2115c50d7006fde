package models

import "time"

// BasketItem is one (user, product) line of an in-progress basket.
// Quantity updates replace the stored value; a row never holds quantity 0.
type BasketItem struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_basket_user_product"`
	ProductID int64     `gorm:"column:product_id;not null;uniqueIndex:idx_basket_user_product"`
	Quantity  int       `gorm:"column:quantity;not null;default:1"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (BasketItem) TableName() string { return "basket_items" }
