package types

import (
	"slices"
	"sync"
)

// Settings holds the owner tunable parts of the catalog. The zero value is
// not usable, always go through CurrentSettings.
type Settings struct {
	sync.RWMutex
	AccessoryCategories []string `json:"accessoryCategories"`
	MinQuantity         uint     `json:"minQuantity"`
}

var CurrentSettings = &Settings{
	AccessoryCategories: []string{"Accesorios"},
	MinQuantity:         2,
}

// IsAccessoryCategory reports whether products in the category sell under
// the minimum quantity rule. Matching is exact, same as the category facet.
func (s *Settings) IsAccessoryCategory(category string) bool {
	s.RLock()
	defer s.RUnlock()
	return slices.Contains(s.AccessoryCategories, category)
}

func (s *Settings) GetAccessoryCategories() []string {
	s.RLock()
	defer s.RUnlock()
	return slices.Clone(s.AccessoryCategories)
}

func (s *Settings) SetAccessoryCategories(categories []string) {
	s.Lock()
	defer s.Unlock()
	s.AccessoryCategories = categories
}

// GetMinQuantity returns the smallest quantity an accessory can be bought
// in. Settings files from before the field existed load as zero, treat
// that as the original rule of two.
func (s *Settings) GetMinQuantity() uint {
	s.RLock()
	defer s.RUnlock()
	if s.MinQuantity == 0 {
		return 2
	}
	return s.MinQuantity
}

func (s *Settings) SetMinQuantity(quantity uint) {
	s.Lock()
	defer s.Unlock()
	s.MinQuantity = quantity
}
