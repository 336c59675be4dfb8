package favorites

import (
	"testing"

	"github.com/AymanChabbaki/safaria-sub000/pkg/catalog"
	"github.com/AymanChabbaki/safaria-sub000/pkg/localstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleIsInvolution(t *testing.T) {
	s := New(localstore.NewMemory())
	l := catalog.Listing{ID: 3, NameFR: "Riad à Marrakech", Price: 1200}

	assert.True(t, s.Toggle(l, catalog.KindSejour, "fr"))
	assert.True(t, s.IsFavorite(3, catalog.KindSejour))
	assert.Equal(t, 1, s.Count())

	assert.False(t, s.Toggle(l, catalog.KindSejour, "fr"))
	assert.False(t, s.IsFavorite(3, catalog.KindSejour))
	assert.Equal(t, 0, s.Count())
}

func TestCompoundKey(t *testing.T) {
	s := New(localstore.NewMemory())

	s.Toggle(catalog.Listing{ID: 7, Name: "Atelier"}, catalog.KindArtisan, "fr")
	assert.True(t, s.IsFavorite(7, catalog.KindArtisan))
	// Same id, different kind: distinct favorite.
	assert.False(t, s.IsFavorite(7, catalog.KindSejour))

	s.Toggle(catalog.Listing{ID: 7, NameFR: "Séjour"}, catalog.KindSejour, "fr")
	assert.Equal(t, 2, s.Count())
}

func TestEntriesAreSnapshots(t *testing.T) {
	storage := localstore.NewMemory()
	s := New(storage)

	l := catalog.Listing{ID: 4, NameFR: "Bivouac", NameEN: "Camp", Location: "Merzouga", Price: 2400, MainImage: "/m.jpg"}
	s.Toggle(l, catalog.KindCaravane, "en")

	entries := s.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, Entry{
		ID:        4,
		Type:      catalog.KindCaravane,
		Name:      "Camp",
		Location:  "Merzouga",
		Price:     2400,
		MainImage: "/m.jpg",
	}, entries[0])
}

func TestPersistsAcrossStores(t *testing.T) {
	storage := localstore.NewMemory()

	first := New(storage)
	first.Toggle(catalog.Listing{ID: 1, Name: "Atelier"}, catalog.KindArtisan, "fr")

	second := New(storage)
	assert.True(t, second.IsFavorite(1, catalog.KindArtisan))
	assert.Equal(t, 1, second.Count())
}

func TestRemovalPersistsEmptyArray(t *testing.T) {
	storage := localstore.NewMemory()
	s := New(storage)

	l := catalog.Listing{ID: 1, Name: "Atelier"}
	s.Toggle(l, catalog.KindArtisan, "fr")
	s.Toggle(l, catalog.KindArtisan, "fr")

	raw, ok := storage.Get(Key)
	require.True(t, ok)
	assert.JSONEq(t, "[]", raw)
}

func TestCorruptStorageStartsEmpty(t *testing.T) {
	storage := localstore.NewMemory()
	storage.Set(Key, "{not an array")

	s := New(storage)
	assert.Equal(t, 0, s.Count())

	// Still usable, and the next flush repairs the stored value.
	s.Toggle(catalog.Listing{ID: 1, Name: "Atelier"}, catalog.KindArtisan, "fr")
	assert.True(t, New(storage).IsFavorite(1, catalog.KindArtisan))
}
