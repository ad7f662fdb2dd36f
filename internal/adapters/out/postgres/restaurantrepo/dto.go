// Package restaurantrepo provides data transfer objects and mapping functions
// for restaurant persistence. The order core reads restaurants for ownership
// checks and listing decoration; restaurant management writes elsewhere.
package restaurantrepo

import (
	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
)

// RestaurantDTO represents the database structure for persisting restaurants.
type RestaurantDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name    string    `gorm:"type:varchar(255);not null"`
	Address string    `gorm:"type:varchar(512);not null"`
}

// TableName specifies the database table name for restaurant entities.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// fromDomain converts a restaurant domain aggregate to its database representation.
func fromDomain(rest *restaurant.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		ID:      rest.ID().Bytes(),
		OwnerID: rest.OwnerID().Bytes(),
		Name:    rest.Name(),
		Address: rest.Address(),
	}
}

// toDomain converts a database DTO to a restaurant domain aggregate.
func toDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	return restaurant.NewRestaurant(id, ownerID, dto.Name, dto.Address)
}
