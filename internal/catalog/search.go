package catalog

import (
	"context"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/rohandesai/brandline-backend/pkg/db/models"
)

// matchedBrandIDs returns the ids of active brands whose name or slug the
// search text fuzzy- or substring-matches. Inactive brands never broaden a
// public search.
func (r *Repository) matchedBrandIDs(ctx context.Context, search string) ([]uint, error) {
	var brands []models.Brand
	err := r.db.WithContext(ctx).
		Select("id", "name", "slug").
		Where("is_active = ?", true).
		Find(&brands).
		Error
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return nil, nil
	}

	var ids []uint
	for _, brand := range brands {
		if brandMatches(needle, brand) {
			ids = append(ids, brand.ID)
		}
	}
	return ids, nil
}

func brandMatches(needle string, brand models.Brand) bool {
	name := strings.ToLower(brand.Name)
	slug := strings.ToLower(brand.Slug)

	if strings.Contains(name, needle) || strings.Contains(slug, needle) {
		return true
	}
	return fuzzy.Match(needle, name) || fuzzy.Match(needle, slug)
}
