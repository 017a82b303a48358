package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"voyago/internal/models/db_models"
)

type WizardRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*db_models.WizardState, error)
	Save(ctx context.Context, state *db_models.WizardState) error
}

type wizardRepository struct {
	db *gorm.DB
}

func NewWizardRepository(db *gorm.DB) WizardRepository {
	return &wizardRepository{db: db}
}

func (r *wizardRepository) Get(ctx context.Context, userID uuid.UUID) (*db_models.WizardState, error) {
	var state db_models.WizardState
	err := r.db.WithContext(ctx).First(&state, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &state, nil
}

func (r *wizardRepository) Save(ctx context.Context, state *db_models.WizardState) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"version", "document", "updated_at"}),
		}).
		Create(state).Error
}

type QuotaRepository interface {
	Get(ctx context.Context, userID uuid.UUID, kind string) (*db_models.GenerationQuota, error)
	// Consume locks the counter row, lets apply check and mutate it, and
	// persists the result. An error from apply rolls back and is returned as is.
	Consume(ctx context.Context, userID uuid.UUID, kind string, apply func(q *db_models.GenerationQuota) error) (*db_models.GenerationQuota, error)
}

type quotaRepository struct {
	db *gorm.DB
}

func NewQuotaRepository(db *gorm.DB) QuotaRepository {
	return &quotaRepository{db: db}
}

func (r *quotaRepository) Get(ctx context.Context, userID uuid.UUID, kind string) (*db_models.GenerationQuota, error) {
	var q db_models.GenerationQuota
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ?", userID, kind).
		First(&q).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &db_models.GenerationQuota{UserID: userID, Kind: kind}, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *quotaRepository) Consume(ctx context.Context, userID uuid.UUID, kind string, apply func(q *db_models.GenerationQuota) error) (*db_models.GenerationQuota, error) {
	var out db_models.GenerationQuota

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := db_models.GenerationQuota{UserID: userID, Kind: kind}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}

		var q db_models.GenerationQuota
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND kind = ?", userID, kind).
			First(&q).Error; err != nil {
			return err
		}

		if err := apply(&q); err != nil {
			return err
		}

		if err := tx.Model(&db_models.GenerationQuota{}).
			Where("user_id = ? AND kind = ?", userID, kind).
			Updates(map[string]any{"count": q.Count, "last_at": q.LastAt}).Error; err != nil {
			return err
		}
		out = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
