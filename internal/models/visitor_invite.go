package models

import "time"

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusApproved InviteStatus = "approved"
	InviteStatusExpired  InviteStatus = "expired"
)

var VisitPurposes = []string{
	"Personal Visit",
	"Business Meeting",
	"Delivery",
	"Maintenance",
	"Family Visit",
	"Other",
}

type VisitorInvite struct {
	ID           string       `gorm:"primaryKey;size:36" json:"id"`
	ResidentID   string       `gorm:"size:36;index;not null" json:"resident_id"`
	VisitorName  string       `gorm:"size:100;not null" json:"visitor_name"`
	VisitorPhone string       `gorm:"size:30;not null" json:"visitor_phone"`
	VisitDate    string       `gorm:"size:10;not null" json:"visit_date"` // 2006-01-02
	VisitTime    string       `gorm:"size:5;not null" json:"visit_time"`  // 15:04
	Purpose      string       `gorm:"size:50;not null" json:"purpose"`
	Code         string       `gorm:"size:10;index;not null" json:"code"`
	OTP          string       `gorm:"size:6;index;not null" json:"otp"`
	Status       InviteStatus `gorm:"size:20;not null" json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Cancellable reports whether the invite may still move to expired.
func (v VisitorInvite) Cancellable() bool {
	return v.Status != InviteStatusExpired
}

// VisitStart parses the planned visit date and time in loc.
func (v VisitorInvite) VisitStart(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", v.VisitDate+" "+v.VisitTime, loc)
}
