package models

import "time"

var ShiftSchedules = []string{
	"Morning (6AM - 2PM)",
	"Evening (2PM - 10PM)",
	"Night (10PM - 6AM)",
}

type Guard struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	UniqueID      string    `gorm:"size:20;uniqueIndex;not null" json:"unique_id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Email         string    `gorm:"size:100;not null" json:"email"`
	ShiftSchedule string    `gorm:"size:50;not null" json:"shift_schedule"`
	CreatedAt     time.Time `json:"created_at"`
}
