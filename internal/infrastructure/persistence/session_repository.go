package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/portal/backend/internal/domain/store"
	"github.com/portal/backend/internal/infrastructure/persistence/models"
)

// GormSessionRepository implements store.SessionRepository using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GormSessionRepository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// Save persists a session, replacing any prior session for the domain
func (r *GormSessionRepository) Save(ctx context.Context, session *store.Session) error {
	var model models.SessionModel
	model.FromDomain(session)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("domain = ? AND id <> ?", model.Domain, model.ID).
			Delete(&models.SessionModel{}).Error; err != nil {
			return err
		}
		return tx.Save(&model).Error
	})
}

// FindByDomain retrieves the most recent session for a domain
func (r *GormSessionRepository) FindByDomain(ctx context.Context, domain string) (*store.Session, error) {
	var model models.SessionModel
	if err := r.db.WithContext(ctx).
		Where("domain = ?", store.NormalizeDomain(domain)).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrSessionNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// DeleteByDomain removes sessions for a domain after store promotion
func (r *GormSessionRepository) DeleteByDomain(ctx context.Context, domain string) error {
	return r.db.WithContext(ctx).
		Where("domain = ?", store.NormalizeDomain(domain)).
		Delete(&models.SessionModel{}).Error
}

// Ensure GormSessionRepository implements store.SessionRepository
var _ store.SessionRepository = (*GormSessionRepository)(nil)
