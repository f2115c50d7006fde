package models

import "time"

// Branch is a pickup location managed through the admin panel.
type Branch struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;size:255;not null"`
	Location    string    `gorm:"column:location;size:500;not null"`
	Description *string   `gorm:"column:description;type:text"`
	ImageFileID *string   `gorm:"column:image_file_id;size:255"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Branch) TableName() string { return "branches" }
