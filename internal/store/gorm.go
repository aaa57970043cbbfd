package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"visitor-backend/internal/models"
)

// Gorm keeps records in a relational database.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func notFound(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("%s %s: %w", what, id, err)
}

func (s *Gorm) ListGuards(ctx context.Context) ([]models.Guard, error) {
	guards := []models.Guard{}
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&guards).Error; err != nil {
		return nil, fmt.Errorf("list guards: %w", err)
	}
	return guards, nil
}

func (s *Gorm) CreateGuard(ctx context.Context, g *models.Guard) error {
	if err := s.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("create guard: %w", err)
	}
	return nil
}

func (s *Gorm) DeleteGuard(ctx context.Context, id string) (*models.Guard, error) {
	var g models.Guard
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&g, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Guard{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, notFound(err, "guard", id)
	}
	return &g, nil
}

func (s *Gorm) ListResidents(ctx context.Context) ([]models.Resident, error) {
	residents := []models.Resident{}
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&residents).Error; err != nil {
		return nil, fmt.Errorf("list residents: %w", err)
	}
	return residents, nil
}

func (s *Gorm) GetResident(ctx context.Context, id string) (*models.Resident, error) {
	var r models.Resident
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "resident", id)
	}
	return &r, nil
}

func (s *Gorm) CreateResident(ctx context.Context, r *models.Resident) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("create resident: %w", err)
	}
	return nil
}

func (s *Gorm) DeleteResident(ctx context.Context, id string) (*models.Resident, error) {
	var r models.Resident
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&r, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Resident{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, notFound(err, "resident", id)
	}
	return &r, nil
}

func (s *Gorm) ListInvites(ctx context.Context) ([]models.VisitorInvite, error) {
	invites := []models.VisitorInvite{}
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&invites).Error; err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	return invites, nil
}

func (s *Gorm) CreateInvite(ctx context.Context, inv *models.VisitorInvite) error {
	if err := s.db.WithContext(ctx).Create(inv).Error; err != nil {
		return fmt.Errorf("create invite: %w", err)
	}
	return nil
}

func (s *Gorm) UpdateInviteStatus(ctx context.Context, id string, from, to models.InviteStatus) (*models.VisitorInvite, error) {
	var inv models.VisitorInvite
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inv, "id = ?", id).Error; err != nil {
			return err
		}
		if inv.Status != from {
			return ErrStatusChanged
		}
		inv.Status = to
		return tx.Model(&models.VisitorInvite{}).Where("id = ?", id).Update("status", to).Error
	})
	if err != nil {
		return nil, notFound(err, "invite", id)
	}
	return &inv, nil
}

func (s *Gorm) ListVisits(ctx context.Context) ([]models.VisitLog, error) {
	visits := []models.VisitLog{}
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&visits).Error; err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	return visits, nil
}

func (s *Gorm) AppendVisit(ctx context.Context, v *models.VisitLog) error {
	if err := s.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("append visit: %w", err)
	}
	return nil
}

func (s *Gorm) AppendAudit(ctx context.Context, l *models.AuditLog) error {
	if err := s.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}
	return nil
}

func (s *Gorm) ListAudit(ctx context.Context) ([]models.AuditLog, error) {
	logs := []models.AuditLog{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}

func (s *Gorm) NextSequence(ctx context.Context, prefix string) (int, error) {
	var seq models.Sequence
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Sequence{Prefix: prefix}).Error; err != nil {
			return err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&seq, "prefix = ?", prefix).Error; err != nil {
			return err
		}
		seq.Value++
		return tx.Save(&seq).Error
	})
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", prefix, err)
	}
	return seq.Value, nil
}
