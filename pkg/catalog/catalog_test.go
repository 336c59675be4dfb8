package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordUnmarshal(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		value float64
		valid bool
	}{
		{"number", `31.7917`, 31.7917, true},
		{"string", `"31.7917"`, 31.7917, true},
		{"negative string", `"-7.0926"`, -7.0926, true},
		{"padded string", `" 34.02 "`, 34.02, true},
		{"garbage string", `"abc"`, 0, false},
		{"empty string", `""`, 0, false},
		{"null", `null`, 0, false},
		{"bool", `true`, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c Coord
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &c))
			assert.Equal(t, tc.valid, c.Valid)
			if tc.valid {
				assert.InDelta(t, tc.value, c.Value, 1e-9)
			}
		})
	}
}

func TestImageListUnmarshal(t *testing.T) {
	var list ImageList
	require.NoError(t, json.Unmarshal([]byte(`["a.jpg","b.jpg"]`), &list))
	assert.Equal(t, ImageList{"a.jpg", "b.jpg"}, list)

	// Legacy rows hold the array JSON-encoded inside a string.
	list = nil
	require.NoError(t, json.Unmarshal([]byte(`"[\"a.jpg\",\"b.jpg\"]"`), &list))
	assert.Equal(t, ImageList{"a.jpg", "b.jpg"}, list)

	list = nil
	require.NoError(t, json.Unmarshal([]byte(`""`), &list))
	assert.Empty(t, list)

	list = nil
	require.NoError(t, json.Unmarshal([]byte(`"not json"`), &list))
	assert.Empty(t, list)

	list = nil
	require.NoError(t, json.Unmarshal([]byte(`null`), &list))
	assert.Empty(t, list)
}

func TestListingDecode(t *testing.T) {
	raw := `{
		"id": 7,
		"name_fr": "Randonnée chamelière",
		"name_en": "Camel trek",
		"latitude": "31.0801",
		"longitude": -4.0133,
		"price": 1200,
		"images": "[\"one.jpg\"]"
	}`
	var l Listing
	require.NoError(t, json.Unmarshal([]byte(raw), &l))

	assert.EqualValues(t, 7, l.ID)
	assert.True(t, l.Latitude.Valid)
	assert.InDelta(t, 31.0801, l.Latitude.Value, 1e-9)
	assert.True(t, l.Longitude.Valid)
	assert.InDelta(t, -4.0133, l.Longitude.Value, 1e-9)
	assert.Equal(t, ImageList{"one.jpg"}, l.Images)
}

func TestDisplayNameFallback(t *testing.T) {
	l := Listing{NameFR: "Séjour à Marrakech", NameEN: "Stay in Marrakech"}

	assert.Equal(t, "Stay in Marrakech", l.DisplayName("en"))
	assert.Equal(t, "Séjour à Marrakech", l.DisplayName("fr"))
	// Arabic missing, falls back to French.
	assert.Equal(t, "Séjour à Marrakech", l.DisplayName("ar"))

	// Artisan rows only carry the plain name.
	artisan := Listing{Name: "Atelier de poterie"}
	assert.Equal(t, "Atelier de poterie", artisan.DisplayName("en"))
}

func TestDisplayDescriptionFallback(t *testing.T) {
	l := Listing{DescriptionFR: "fr", DescriptionAR: "ar"}
	assert.Equal(t, "ar", l.DisplayDescription("ar"))
	assert.Equal(t, "fr", l.DisplayDescription("en"))
	assert.Equal(t, "fr", l.DisplayDescription("fr"))
}
