package repositories

import "animart/internal/models"

// SettingsRepository defines the interface for store settings access. The
// settings are a singleton row; Get creates it with defaults on first use.
type SettingsRepository interface {
	Get() (*models.StoreSettings, error)
	Update(settings *models.StoreSettings) error
}
