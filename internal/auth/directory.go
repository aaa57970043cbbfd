package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"visitor-backend/internal/models"
	"visitor-backend/internal/seed"
)

// Directory is the fixed set of identities that may log in.
type Directory struct {
	byEmail map[string]models.Identity
}

// NewDirectory hashes the demo passwords once so only hashes stay in memory.
func NewDirectory(accounts []seed.Account, cost int) (*Directory, error) {
	d := &Directory{byEmail: make(map[string]models.Identity, len(accounts))}
	for _, acc := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", acc.Identity.Email, err)
		}
		ident := acc.Identity
		ident.PasswordHash = string(hash)
		d.byEmail[normalizeEmail(ident.Email)] = ident
	}
	return d, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// Match returns the identity whose email and password both match.
func (d *Directory) Match(email, password string) (models.Identity, bool) {
	ident, ok := d.byEmail[normalizeEmail(email)]
	if !ok {
		return models.Identity{}, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(password)); err != nil {
		return models.Identity{}, false
	}
	return ident, true
}

func (d *Directory) Len() int {
	return len(d.byEmail)
}
