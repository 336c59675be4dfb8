package markers

import (
	"encoding/json"
	"testing"

	"github.com/AymanChabbaki/safaria-sub000/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectOrderAndKeys(t *testing.T) {
	cols := Collections{
		Artisans:  []catalog.Listing{{ID: 1, Latitude: coord(32.3), Longitude: coord(-9.2)}},
		Sejours:   []catalog.Listing{{ID: 2, Latitude: coord(31.6), Longitude: coord(-8.0)}},
		Caravanes: []catalog.Listing{{ID: 3, Latitude: coord(31.1), Longitude: coord(-4.0)}},
	}

	ms := Project(cols, CategoryAll)
	require.Len(t, ms, 3)
	assert.Equal(t, "artisan-1", ms[0].Key)
	assert.Equal(t, "sejour-2", ms[1].Key)
	assert.Equal(t, "caravane-3", ms[2].Key)
	assert.Equal(t, [2]float64{32.3, -9.2}, ms[0].Position)
}

func TestProjectExcludesInvalidCoords(t *testing.T) {
	// Simulate the backend's string coordinates, including a bad one.
	var bad, good catalog.Listing
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"latitude":"abc","longitude":"-9.2"}`), &bad))
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"latitude":"32.3","longitude":"-9.2"}`), &good))

	ms := Project(Collections{Artisans: []catalog.Listing{bad, good}}, CategoryAll)
	require.Len(t, ms, 1)
	assert.Equal(t, "artisan-2", ms[0].Key)
}

func TestProjectCategoryFilter(t *testing.T) {
	cols := Collections{
		Artisans: []catalog.Listing{{ID: 1, Latitude: coord(32.3), Longitude: coord(-9.2)}},
		Sejours:  []catalog.Listing{{ID: 2, Latitude: coord(31.6), Longitude: coord(-8.0)}},
	}

	ms := Project(cols, catalog.KindSejour)
	require.Len(t, ms, 1)
	assert.Equal(t, "sejour", ms[0].Type)

	// The app store's historical tag resolves to artisans.
	ms = Project(cols, "artisanat")
	require.Len(t, ms, 1)
	assert.Equal(t, "artisan", ms[0].Type)
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "artisan", NormalizeCategory("artisanat"))
	assert.Equal(t, "artisan", NormalizeCategory("artisan"))
	assert.Equal(t, "sejour", NormalizeCategory("sejour"))
	assert.Equal(t, "all", NormalizeCategory("all"))
}

func TestDemoFallbackOnlyWhenEmptyAndEnabled(t *testing.T) {
	empty := Collections{}

	// Disabled: empty in, empty out.
	assert.Empty(t, Project(empty, CategoryAll))

	// Enabled and empty: the full sample dataset appears.
	ms := Config{DemoFallback: true}.Project(empty, CategoryAll)
	assert.Len(t, ms, 9)

	// Enabled but data present: real data wins.
	cols := Collections{Artisans: []catalog.Listing{{ID: 1, Latitude: coord(32.3), Longitude: coord(-9.2)}}}
	ms = Config{DemoFallback: true}.Project(cols, CategoryAll)
	require.Len(t, ms, 1)
	assert.Equal(t, "artisan-1", ms[0].Key)
}

func TestDemoCollectionsAreProjectable(t *testing.T) {
	demo := DemoCollections()
	assert.Len(t, demo.Artisans, 3)
	assert.Len(t, demo.Sejours, 3)
	assert.Len(t, demo.Caravanes, 3)

	// Every demo listing carries usable coordinates.
	ms := Project(demo, CategoryAll)
	assert.Len(t, ms, 9)
	for _, m := range ms {
		assert.NotZero(t, m.Position[0])
		assert.NotZero(t, m.Position[1])
	}
}
