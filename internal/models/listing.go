package models

import "time"

// Listing kind discriminators and their tables. Artisans carry a single
// name/description; sejours and caravanes carry per-language fields.
type ListingKind struct {
	Name         string
	Table        string
	Multilingual bool
}

var (
	KindArtisan  = ListingKind{Name: "artisan", Table: "artisans"}
	KindSejour   = ListingKind{Name: "sejour", Table: "sejours", Multilingual: true}
	KindCaravane = ListingKind{Name: "caravane", Table: "caravanes", Multilingual: true}
)

// KindByName resolves a discriminator; ok is false for unknown names.
func KindByName(name string) (ListingKind, bool) {
	switch name {
	case KindArtisan.Name:
		return KindArtisan, true
	case KindSejour.Name:
		return KindSejour, true
	case KindCaravane.Name:
		return KindCaravane, true
	}
	return ListingKind{}, false
}

// Listing is a row from one of the three listing tables. Latitude and
// longitude stay strings end to end: legacy rows hold free-form text
// and clients coerce at the point of use. Images and Images360 hold the
// JSON-encoded arrays exactly as stored.
type Listing struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Artisan fields.
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Specialty   string `json:"specialty,omitempty"`

	// Multilingual fields (sejours, caravanes).
	NameFR        string `json:"name_fr,omitempty"`
	NameEN        string `json:"name_en,omitempty"`
	NameAR        string `json:"name_ar,omitempty"`
	DescriptionFR string `json:"description_fr,omitempty"`
	DescriptionEN string `json:"description_en,omitempty"`
	DescriptionAR string `json:"description_ar,omitempty"`

	Location  string  `json:"location,omitempty"`
	Duration  string  `json:"duration,omitempty"`
	Latitude  string  `json:"latitude,omitempty"`
	Longitude string  `json:"longitude,omitempty"`
	Price     float64 `json:"price"`
	MainImage string  `json:"main_image,omitempty"`
	Images    string  `json:"images,omitempty"`
	Images360 string  `json:"images360,omitempty"`
}

// Localize fills the plain Name/Description fields of a multilingual
// listing for the requested language, falling back to French. Artisan
// rows are returned unchanged.
func (l Listing) Localize(kind ListingKind, lang string) Listing {
	if !kind.Multilingual {
		return l
	}
	switch lang {
	case "en":
		l.Name = firstNonEmpty(l.NameEN, l.NameFR)
		l.Description = firstNonEmpty(l.DescriptionEN, l.DescriptionFR)
	case "ar":
		l.Name = firstNonEmpty(l.NameAR, l.NameFR)
		l.Description = firstNonEmpty(l.DescriptionAR, l.DescriptionFR)
	default:
		l.Name = l.NameFR
		l.Description = l.DescriptionFR
	}
	return l
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
