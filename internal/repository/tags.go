package repository

import (
	"context"

	"github.com/savedsphere/sphered/internal/domain"
)

// GetTags returns all tags.
func (r *Repository) GetTags(ctx context.Context) ([]domain.Tag, error) {
	return r.readTags(ctx)
}

// applyTagDiff adjusts usage counts when a link's tag set changes:
// oldTags are released, newTags are acquired. Tags are created on
// first use and removed once their count reaches zero; counts never go
// negative.
func (r *Repository) applyTagDiff(ctx context.Context, newTags, oldTags []string) error {
	if len(newTags) == 0 && len(oldTags) == 0 {
		return nil
	}

	tags, err := r.readTags(ctx)
	if err != nil {
		return err
	}

	for _, name := range oldTags {
		for i := range tags {
			if tags[i].Name == name {
				if tags[i].UsageCount > 0 {
					tags[i].UsageCount--
				}
				break
			}
		}
	}

	for _, name := range newTags {
		found := false
		for i := range tags {
			if tags[i].Name == name {
				tags[i].UsageCount++
				found = true
				break
			}
		}
		if !found {
			tags = append(tags, domain.Tag{
				ID:         r.newID(),
				Name:       name,
				Color:      domain.DefaultTagColor,
				UsageCount: 1,
				CreatedAt:  r.now(),
			})
		}
	}

	kept := make([]domain.Tag, 0, len(tags))
	for _, t := range tags {
		if t.UsageCount > 0 {
			kept = append(kept, t)
		}
	}
	return r.writeTags(ctx, kept)
}
