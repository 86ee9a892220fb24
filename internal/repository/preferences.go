package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/savedsphere/sphered/internal/domain"
	"github.com/savedsphere/sphered/internal/store"
)

// GetPreferences returns the user settings, falling back to defaults
// when nothing has been saved yet.
func (r *Repository) GetPreferences(ctx context.Context) (domain.Preferences, error) {
	data, err := r.store.Get(ctx, store.KeyPreferences)
	if err != nil {
		return domain.DefaultPreferences(), err
	}
	if data == nil {
		return domain.DefaultPreferences(), nil
	}

	var prefs domain.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return domain.DefaultPreferences(), fmt.Errorf("failed to decode preferences: %w", err)
	}
	return prefs, nil
}

// UpdatePreferences merges a partial update into the stored settings
// and returns the result.
func (r *Repository) UpdatePreferences(ctx context.Context, patch domain.PreferencesPatch) (domain.Preferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.GetPreferences(ctx)
	if err != nil {
		return current, err
	}

	merged := current.Merge(patch)
	if err := r.writeJSON(ctx, store.KeyPreferences, merged); err != nil {
		return current, err
	}
	return merged, nil
}
