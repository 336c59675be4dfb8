// Package markers derives the flat, typed marker list the map renders
// from the three cached listing collections.
package markers

import (
	"fmt"

	"github.com/AymanChabbaki/safaria-sub000/pkg/catalog"
)

// CategoryAll selects every collection.
const CategoryAll = "all"

// Marker is a geolocated listing ready for the map layer. Position is
// [lat, lng] in decimal degrees.
type Marker struct {
	Key      string
	Type     string
	Listing  catalog.Listing
	Position [2]float64
}

// Collections groups the three cached listing collections.
type Collections struct {
	Artisans  []catalog.Listing
	Sejours   []catalog.Listing
	Caravanes []catalog.Listing
}

// Empty reports whether all three collections have zero items.
func (c Collections) Empty() bool {
	return len(c.Artisans) == 0 && len(c.Sejours) == 0 && len(c.Caravanes) == 0
}

// Config controls projection behavior.
type Config struct {
	// DemoFallback substitutes the built-in sample dataset when every
	// collection is empty. For demos and development only: with it
	// enabled, a legitimately empty database shows fabricated markers.
	DemoFallback bool
}

// NormalizeCategory maps the app store's "artisanat" tag to the
// "artisan" discriminator used here and by favorites. Other values pass
// through unchanged.
func NormalizeCategory(category string) string {
	if category == "artisanat" {
		return catalog.KindArtisan
	}
	return category
}

// Project flattens the collections into markers, in the fixed order
// artisan → sejour → caravane. A listing whose latitude or longitude is
// missing or non-numeric is silently excluded; there are no partial
// markers. category is "all" or one of the listing kinds.
func (cfg Config) Project(cols Collections, category string) []Marker {
	if cfg.DemoFallback && cols.Empty() {
		cols = DemoCollections()
	}
	return project(cols, NormalizeCategory(category))
}

// Project is the config-free form, with the demo fallback disabled.
func Project(cols Collections, category string) []Marker {
	return Config{}.Project(cols, category)
}

func project(cols Collections, category string) []Marker {
	var out []Marker
	appendKind := func(items []catalog.Listing, kind string) {
		if category != CategoryAll && category != kind {
			return
		}
		for _, l := range items {
			if !l.Latitude.Valid || !l.Longitude.Valid {
				continue
			}
			out = append(out, Marker{
				Key:      fmt.Sprintf("%s-%d", kind, l.ID),
				Type:     kind,
				Listing:  l,
				Position: [2]float64{l.Latitude.Value, l.Longitude.Value},
			})
		}
	}
	appendKind(cols.Artisans, catalog.KindArtisan)
	appendKind(cols.Sejours, catalog.KindSejour)
	appendKind(cols.Caravanes, catalog.KindCaravane)
	return out
}
