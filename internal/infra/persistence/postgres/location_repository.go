package postgres

import (
	"context"

	"spotalert/internal/domain/entity"
	"spotalert/internal/domain/repository"
	"spotalert/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// locationRepository implements repository.LocationRepository on PostgreSQL.
// The gateway semantics are whole-set: Save replaces the table contents in a
// single transaction, Load returns rows in saved (insertion) order.
type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository is the constructor for locationRepository.
func NewLocationRepository(db *gorm.DB) repository.LocationRepository {
	return &locationRepository{db: db}
}

// Load retrieves the whole saved-location set in insertion order.
func (repo *locationRepository) Load(ctx context.Context) ([]*entity.AlertLocation, error) {
	var models []model.AlertLocationModel
	if err := repo.db.WithContext(ctx).
		Order("position ASC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load alert locations")
	}

	locations := make([]*entity.AlertLocation, 0, len(models))
	for i := range models {
		locations = append(locations, toLocationDomain(&models[i]))
	}

	return locations, nil
}

// Save replaces the stored set with the given one.
func (repo *locationRepository) Save(ctx context.Context, locations []*entity.AlertLocation) error {
	models := make([]model.AlertLocationModel, 0, len(locations))
	for i, loc := range locations {
		models = append(models, *fromLocationDomain(loc, i))
	}

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.AlertLocationModel{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}

		return tx.Create(&models).Error
	})

	return errors.Wrap(err, "failed to save alert locations")
}

func toLocationDomain(m *model.AlertLocationModel) *entity.AlertLocation {
	return &entity.AlertLocation{
		ID:        m.ID,
		Name:      m.Name,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		Reminder:  m.Reminder,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromLocationDomain(loc *entity.AlertLocation, position int) *model.AlertLocationModel {
	return &model.AlertLocationModel{
		ID:        loc.ID,
		Position:  position,
		Name:      loc.Name,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Reminder:  loc.Reminder,
		CreatedAt: loc.CreatedAt,
		UpdatedAt: loc.UpdatedAt,
	}
}
