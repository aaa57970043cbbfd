package models

import (
	"time"
	"unicode/utf8"
)

type Resident struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	UniqueID        string    `gorm:"size:20;uniqueIndex;not null" json:"unique_id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	Email           string    `gorm:"size:100;not null" json:"email"`
	ApartmentNumber string    `gorm:"size:20;not null" json:"apartment_number"`
	CreatedAt       time.Time `json:"created_at"`
}

// Block is the building block letter of the apartment (A-101 -> A).
func (r Resident) Block() string {
	first, size := utf8.DecodeRuneInString(r.ApartmentNumber)
	if first == utf8.RuneError {
		return ""
	}
	return r.ApartmentNumber[:size]
}
