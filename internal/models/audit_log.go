package models

import "time"

type AuditLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID uint
	User   User

	Entity   string `gorm:"size:50;not null"` // "registro", "versao", "cronograma"
	RecordID string `gorm:"size:36"`
	Action   string `gorm:"size:50;not null"` // "create", "update", "delete" etc.
	Details  string `gorm:"type:text"`
}
