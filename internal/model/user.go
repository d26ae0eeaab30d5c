package model

import "time"

// User stores a Telegram subscriber.
type User struct {
	ID         uint  `gorm:"primaryKey"`
	TelegramID int64 `gorm:"uniqueIndex"`
	ChatID     int64
	FirstName  string
	LastName   string
	Username   string
	Notify     bool `gorm:"default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
