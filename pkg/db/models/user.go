package models

import "time"

// User is a Telegram account known to the bot. Rows are created on first
// contact and never deleted by the bot itself.
type User struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	TgID        int64      `gorm:"column:tg_id;not null;uniqueIndex"`
	Username    *string    `gorm:"column:username;size:255"`
	FirstName   *string    `gorm:"column:first_name;size:255"`
	LastName    *string    `gorm:"column:last_name;size:255"`
	FullName    *string    `gorm:"column:full_name;size:512"`
	PhoneNumber *string    `gorm:"column:phone_number;size:20"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	BasketItems []BasketItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Orders      []Order      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string { return "users" }

// DisplayName prefers the full name, falling back to the first name.
func (u *User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	if u.FirstName != nil {
		return *u.FirstName
	}
	return ""
}
