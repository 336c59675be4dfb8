package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindByName(t *testing.T) {
	kind, ok := KindByName("sejour")
	assert.True(t, ok)
	assert.Equal(t, "sejours", kind.Table)
	assert.True(t, kind.Multilingual)

	kind, ok = KindByName("artisan")
	assert.True(t, ok)
	assert.False(t, kind.Multilingual)

	_, ok = KindByName("hotel")
	assert.False(t, ok)
}

func TestLocalize(t *testing.T) {
	l := Listing{
		NameFR:        "Caravane de Zagora",
		NameEN:        "Zagora caravan",
		DescriptionFR: "desc fr",
	}

	en := l.Localize(KindCaravane, "en")
	assert.Equal(t, "Zagora caravan", en.Name)
	// English description missing, falls back to French.
	assert.Equal(t, "desc fr", en.Description)

	ar := l.Localize(KindCaravane, "ar")
	assert.Equal(t, "Caravane de Zagora", ar.Name)

	fr := l.Localize(KindCaravane, "fr")
	assert.Equal(t, "Caravane de Zagora", fr.Name)
}

func TestLocalizeArtisanUnchanged(t *testing.T) {
	l := Listing{Name: "Atelier", Description: "poterie"}
	out := l.Localize(KindArtisan, "ar")
	assert.Equal(t, l, out)
}
