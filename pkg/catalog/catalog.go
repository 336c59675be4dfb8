package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Listing kinds as used by the API, favorites and the map.
const (
	KindArtisan  = "artisan"
	KindSejour   = "sejour"
	KindCaravane = "caravane"
)

// Coord is a latitude or longitude that the backend may deliver as a
// JSON number, a numeric string, or not at all. Anything that does not
// parse as a float leaves Valid false; callers must treat such listings
// as having no position.
type Coord struct {
	Value float64
	Valid bool
}

func (c *Coord) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*c = Coord{}
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*c = Coord{}
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			*c = Coord{}
			return nil
		}
		*c = Coord{Value: v, Valid: true}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*c = Coord{}
		return nil
	}
	*c = Coord{Value: v, Valid: true}
	return nil
}

func (c Coord) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// ImageList is an ordered list of image references. Some rows store it
// as a real JSON array, older rows as a JSON-encoded string containing
// an array. A value that decodes as neither yields an empty list.
type ImageList []string

func (l *ImageList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		var inner []string
		if err := json.Unmarshal([]byte(s), &inner); err == nil {
			*l = inner
			return nil
		}
	}
	*l = nil
	return nil
}

// Listing is a bookable entity: an artisan workshop, a stay (séjour) or
// a desert caravan. Artisans carry a single name/description; stays and
// caravans carry per-language fields, with Name/Description filled by
// the API according to the requested language.
type Listing struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name,omitempty"`
	NameFR        string    `json:"name_fr,omitempty"`
	NameEN        string    `json:"name_en,omitempty"`
	NameAR        string    `json:"name_ar,omitempty"`
	Description   string    `json:"description,omitempty"`
	DescriptionFR string    `json:"description_fr,omitempty"`
	DescriptionEN string    `json:"description_en,omitempty"`
	DescriptionAR string    `json:"description_ar,omitempty"`
	Location      string    `json:"location,omitempty"`
	Duration      string    `json:"duration,omitempty"`
	Latitude      Coord     `json:"latitude"`
	Longitude     Coord     `json:"longitude"`
	Price         float64   `json:"price"`
	MainImage     string    `json:"main_image,omitempty"`
	Images        ImageList `json:"images,omitempty"`
	Images360     ImageList `json:"images360,omitempty"`
}

// DisplayName returns the best name for the given language, falling
// back to French, then to the plain name field.
func (l Listing) DisplayName(lang string) string {
	switch lang {
	case "en":
		if l.NameEN != "" {
			return l.NameEN
		}
	case "ar":
		if l.NameAR != "" {
			return l.NameAR
		}
	}
	if l.NameFR != "" {
		return l.NameFR
	}
	return l.Name
}

// DisplayDescription mirrors DisplayName for descriptions.
func (l Listing) DisplayDescription(lang string) string {
	switch lang {
	case "en":
		if l.DescriptionEN != "" {
			return l.DescriptionEN
		}
	case "ar":
		if l.DescriptionAR != "" {
			return l.DescriptionAR
		}
	}
	if l.DescriptionFR != "" {
		return l.DescriptionFR
	}
	return l.Description
}
