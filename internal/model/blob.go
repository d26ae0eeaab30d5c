package model

import "time"

// Blob is a named string value in the key-value store.
type Blob struct {
	Name      string `gorm:"primaryKey"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}
