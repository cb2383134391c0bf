package repositories

import (
	"sync"

	"animart/internal/models"
)

// MockSettingsRepository is an in-memory implementation of SettingsRepository.
type MockSettingsRepository struct {
	settings models.StoreSettings
	mu       sync.RWMutex
}

// NewMockSettingsRepository creates a repository seeded with the defaults.
func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{
		settings: models.DefaultStoreSettings(),
	}
}

// Get returns the current settings.
func (r *MockSettingsRepository) Get() (*models.StoreSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	settings := r.settings
	return &settings, nil
}

// Update replaces the settings.
func (r *MockSettingsRepository) Update(settings *models.StoreSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings.ID = 1
	r.settings = *settings
	return nil
}
