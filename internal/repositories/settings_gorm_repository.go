package repositories

import (
	"fmt"

	"animart/internal/models"

	"gorm.io/gorm"
)

// GORMSettingsRepository is a GORM implementation of SettingsRepository.
type GORMSettingsRepository struct {
	db *gorm.DB
}

// NewGORMSettingsRepository creates a new instance of GORMSettingsRepository.
func NewGORMSettingsRepository(db *gorm.DB) *GORMSettingsRepository {
	return &GORMSettingsRepository{
		db: db,
	}
}

// Get returns the settings row, creating it with defaults if absent.
func (r *GORMSettingsRepository) Get() (*models.StoreSettings, error) {
	var settings models.StoreSettings
	err := r.db.First(&settings, "id = ?", 1).Error
	if err == gorm.ErrRecordNotFound {
		settings = models.DefaultStoreSettings()
		if createErr := r.db.Create(&settings).Error; createErr != nil {
			return nil, fmt.Errorf("failed to create default store settings: %w", createErr)
		}
		return &settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store settings: %w", err)
	}
	return &settings, nil
}

// Update persists changed settings.
func (r *GORMSettingsRepository) Update(settings *models.StoreSettings) error {
	settings.ID = 1
	if err := r.db.Save(settings).Error; err != nil {
		return fmt.Errorf("failed to update store settings: %w", err)
	}
	return nil
}
