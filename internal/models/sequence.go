package models

// Sequence is the monotonic counter behind display ids. It only grows, so a
// deleted record's display id is never handed out again.
type Sequence struct {
	Prefix string `gorm:"primaryKey;size:10"`
	Value  int    `gorm:"not null"`
}
