package models

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestResidentBlock(t *testing.T) {
	tests := []struct {
		apartment string
		want      string
	}{
		{"A-101", "A"},
		{"Ö-12", "Ö"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Resident{ApartmentNumber: tt.apartment}.Block()
		assert.Equal(t, tt.want, got)
		assert.True(t, utf8.ValidString(got))
	}
}
