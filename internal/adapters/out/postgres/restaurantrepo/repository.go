package restaurantrepo

import (
	"context"
	"errors"

	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/core/domain/model/restaurant"
	"swiftserve/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRestaurantRepository implements RestaurantRepository using GORM.
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewGormRestaurantRepository creates a new GORM restaurant repository.
func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// Add saves a new restaurant to the database. Not part of the core port:
// restaurant onboarding happens outside the order flow, but the adapter and
// its tests need a write path.
func (r *GormRestaurantRepository) Add(ctx context.Context, rest *restaurant.Restaurant) error {
	if err := rest.Validate(); err != nil {
		return err
	}

	dto := fromDomain(rest)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a restaurant by ID.
func (r *GormRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurant", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOwner retrieves the restaurant owned by the given account.
func (r *GormRestaurantRepository) GetByOwner(
	ctx context.Context,
	ownerID kernel.UUID,
) (*restaurant.Restaurant, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).First(&dto, "owner_id = ?", ownerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurant owner", ownerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
