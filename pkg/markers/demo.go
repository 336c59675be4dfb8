package markers

import "github.com/AymanChabbaki/safaria-sub000/pkg/catalog"

func coord(v float64) catalog.Coord {
	return catalog.Coord{Value: v, Valid: true}
}

// DemoCollections returns the built-in sample dataset: three listings
// per kind with plausible Moroccan coordinates, so the map has content
// before the database does.
func DemoCollections() Collections {
	return Collections{
		Artisans: []catalog.Listing{
			{ID: 1, Name: "Poterie de Safi", Location: "Safi", Price: 150, Latitude: coord(32.2994), Longitude: coord(-9.2372)},
			{ID: 2, Name: "Tannerie Chouara", Location: "Fès", Price: 200, Latitude: coord(34.0661), Longitude: coord(-4.9735)},
			{ID: 3, Name: "Tissage berbère", Location: "Chefchaouen", Price: 120, Latitude: coord(35.1688), Longitude: coord(-5.2636)},
		},
		Sejours: []catalog.Listing{
			{ID: 1, NameFR: "Riad médina de Marrakech", Location: "Marrakech", Price: 850, Latitude: coord(31.6295), Longitude: coord(-7.9811)},
			{ID: 2, NameFR: "Kasbah des Oudayas", Location: "Rabat", Price: 650, Latitude: coord(34.0253), Longitude: coord(-6.8327)},
			{ID: 3, NameFR: "Maison d'hôtes Essaouira", Location: "Essaouira", Price: 550, Latitude: coord(31.5085), Longitude: coord(-9.7595)},
		},
		Caravanes: []catalog.Listing{
			{ID: 1, NameFR: "Caravane de Merzouga", Location: "Merzouga", Price: 1200, Latitude: coord(31.0802), Longitude: coord(-4.0133)},
			{ID: 2, NameFR: "Bivouac de Zagora", Location: "Zagora", Price: 950, Latitude: coord(30.3306), Longitude: coord(-5.8381)},
			{ID: 3, NameFR: "Dunes de M'Hamid", Location: "M'Hamid El Ghizlane", Price: 1400, Latitude: coord(29.8257), Longitude: coord(-5.7233)},
		},
	}
}
