// Package store is the record layer behind guards, residents, invitations,
// the visit log and the audit trail.
package store

import (
	"context"
	"errors"

	"visitor-backend/internal/models"
	"visitor-backend/internal/seed"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrStatusChanged means the record no longer has the status the
	// caller expected.
	ErrStatusChanged = errors.New("record status changed")
)

type Store interface {
	ListGuards(ctx context.Context) ([]models.Guard, error)
	CreateGuard(ctx context.Context, g *models.Guard) error
	DeleteGuard(ctx context.Context, id string) (*models.Guard, error)

	ListResidents(ctx context.Context) ([]models.Resident, error)
	GetResident(ctx context.Context, id string) (*models.Resident, error)
	CreateResident(ctx context.Context, r *models.Resident) error
	DeleteResident(ctx context.Context, id string) (*models.Resident, error)

	ListInvites(ctx context.Context) ([]models.VisitorInvite, error)
	CreateInvite(ctx context.Context, inv *models.VisitorInvite) error
	// UpdateInviteStatus moves an invite from status from to status to.
	UpdateInviteStatus(ctx context.Context, id string, from, to models.InviteStatus) (*models.VisitorInvite, error)

	ListVisits(ctx context.Context) ([]models.VisitLog, error)
	AppendVisit(ctx context.Context, v *models.VisitLog) error

	AppendAudit(ctx context.Context, l *models.AuditLog) error
	// ListAudit returns the newest entry first.
	ListAudit(ctx context.Context) ([]models.AuditLog, error)

	// NextSequence returns the next value of the monotonic counter for prefix.
	NextSequence(ctx context.Context, prefix string) (int, error)
}

// Snapshot is the initial content of a store.
type Snapshot struct {
	Guards    []models.Guard
	Residents []models.Resident
	Invites   []models.VisitorInvite
	Visits    []models.VisitLog
}

func SeedSnapshot() Snapshot {
	return Snapshot{
		Guards:    seed.Guards(),
		Residents: seed.Residents(),
		Invites:   seed.Invites(),
		Visits:    seed.Visits(),
	}
}

// Sequences derives the starting counter values from the display ids
// already present in the snapshot.
func (s Snapshot) Sequences() map[string]int {
	guardIDs := make([]string, 0, len(s.Guards))
	for _, g := range s.Guards {
		guardIDs = append(guardIDs, g.UniqueID)
	}
	residentIDs := make([]string, 0, len(s.Residents))
	for _, r := range s.Residents {
		residentIDs = append(residentIDs, r.UniqueID)
	}
	return map[string]int{
		models.GuardIDPrefix:    models.MaxSequence(models.GuardIDPrefix, guardIDs),
		models.ResidentIDPrefix: models.MaxSequence(models.ResidentIDPrefix, residentIDs),
	}
}
