package models

import "time"

type VisitStatus string

const (
	VisitStatusActive  VisitStatus = "Active"
	VisitStatusExpired VisitStatus = "expired"
)

type VisitLog struct {
	ID           string      `gorm:"primaryKey;size:36" json:"id"`
	Date         string      `gorm:"size:10;index" json:"date"`
	Time         string      `gorm:"size:8" json:"time"`
	VisitorName  string      `gorm:"size:100" json:"name"`
	Contact      string      `gorm:"size:100" json:"contact_info"`
	VerifiedBy   string      `gorm:"size:100" json:"verified_by"`
	Status       VisitStatus `gorm:"size:20" json:"status"`
	ResidentID   string      `gorm:"size:36;index" json:"resident_id"`
	ResidentName string      `gorm:"size:100" json:"resident"`
	Purpose      string      `gorm:"size:50" json:"purpose"`
	CreatedAt    time.Time   `json:"created_at"`
}
