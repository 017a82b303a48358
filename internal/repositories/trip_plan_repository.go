package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"voyago/internal/models/db_models"
)

type TripPlanRepository interface {
	Create(ctx context.Context, plan *db_models.TripPlan) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.TripPlan, error)
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*db_models.TripPlan, error)
	UpdateItinerary(ctx context.Context, userID, id uuid.UUID, itinerary datatypes.JSON) error
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

type tripPlanRepository struct {
	db *gorm.DB
}

func NewTripPlanRepository(db *gorm.DB) TripPlanRepository {
	return &tripPlanRepository{db: db}
}

func (r *tripPlanRepository) Create(ctx context.Context, plan *db_models.TripPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

// ListByUser returns newest first; limit <= 0 means all.
func (r *tripPlanRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.TripPlan, error) {
	var plans []db_models.TripPlan
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *tripPlanRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*db_models.TripPlan, error) {
	var plan db_models.TripPlan
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&plan).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *tripPlanRepository) UpdateItinerary(ctx context.Context, userID, id uuid.UUID, itinerary datatypes.JSON) error {
	res := r.db.WithContext(ctx).
		Model(&db_models.TripPlan{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("itinerary", itinerary)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *tripPlanRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&db_models.TripPlan{})
	return res.RowsAffected > 0, res.Error
}
