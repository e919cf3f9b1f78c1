package model

import "time"

// KeyValueModel represents the key_values table, a plain blob store keyed by name.
type KeyValueModel struct {
	Key       string    `gorm:"type:varchar(128);primaryKey"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the KeyValueModel.
func (KeyValueModel) TableName() string {
	return "key_values"
}
