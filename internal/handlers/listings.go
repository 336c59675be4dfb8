package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"

	"github.com/AymanChabbaki/safaria-sub000/internal/database"
	"github.com/AymanChabbaki/safaria-sub000/internal/models"
	"github.com/AymanChabbaki/safaria-sub000/internal/services"
	"github.com/go-chi/chi/v5"
)

// GetArtisans lists the artisan catalog.
func GetArtisans(w http.ResponseWriter, r *http.Request) {
	listKind(w, r, models.KindArtisan)
}

// GetSejours lists the stays catalog, localized via ?lang=.
func GetSejours(w http.ResponseWriter, r *http.Request) {
	listKind(w, r, models.KindSejour)
}

// GetCaravanes lists the desert caravan catalog, localized via ?lang=.
func GetCaravanes(w http.ResponseWriter, r *http.Request) {
	listKind(w, r, models.KindCaravane)
}

// GetArtisan returns one artisan by id.
func GetArtisan(w http.ResponseWriter, r *http.Request) {
	getKind(w, r, models.KindArtisan)
}

// GetSejour returns one stay by id.
func GetSejour(w http.ResponseWriter, r *http.Request) {
	getKind(w, r, models.KindSejour)
}

// GetCaravane returns one caravan by id.
func GetCaravane(w http.ResponseWriter, r *http.Request) {
	getKind(w, r, models.KindCaravane)
}

func requestLang(r *http.Request) string {
	switch lang := r.URL.Query().Get("lang"); lang {
	case "en", "ar":
		return lang
	default:
		return "fr"
	}
}

func listKind(w http.ResponseWriter, r *http.Request, kind models.ListingKind) {
	lang := requestLang(r)

	if cached, ok := services.Listings.Get(r.Context(), kind, lang); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	listings, err := queryListings(r, kind)
	if err != nil {
		log.Printf("ERROR: failed to query %s: %v", kind.Table, err)
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	localized := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		localized = append(localized, l.Localize(kind, lang))
	}

	services.Listings.Set(r.Context(), kind, lang, localized)
	writeJSON(w, http.StatusOK, localized)
}

func getKind(w http.ResponseWriter, r *http.Request, kind models.ListingKind) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid listing id")
		return
	}

	listing, err := queryListing(r, kind, id)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "Listing not found")
		return
	} else if err != nil {
		log.Printf("ERROR: failed to query %s %d: %v", kind.Table, id, err)
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, listing.Localize(kind, requestLang(r)))
}

func listingColumns(kind models.ListingKind) string {
	if kind.Multilingual {
		return `id, created_at, updated_at,
			name_fr, COALESCE(name_en, ''), COALESCE(name_ar, ''),
			COALESCE(description_fr, ''), COALESCE(description_en, ''), COALESCE(description_ar, ''),
			location, duration, latitude, longitude, price, main_image, images, images360`
	}
	return `id, created_at, updated_at,
		name, description, specialty,
		location, latitude, longitude, price, main_image, images, images360`
}

func queryListings(r *http.Request, kind models.ListingKind) ([]models.Listing, error) {
	rows, err := database.PostgresDB.QueryContext(r.Context(),
		"SELECT "+listingColumns(kind)+" FROM "+kind.Table+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []models.Listing{}
	for rows.Next() {
		l, err := scanListing(rows, kind)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func queryListing(r *http.Request, kind models.ListingKind, id int64) (models.Listing, error) {
	rows, err := database.PostgresDB.QueryContext(r.Context(),
		"SELECT "+listingColumns(kind)+" FROM "+kind.Table+" WHERE id = $1", id)
	if err != nil {
		return models.Listing{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return models.Listing{}, err
		}
		return models.Listing{}, sql.ErrNoRows
	}
	return scanListing(rows, kind)
}

func scanListing(rows *sql.Rows, kind models.ListingKind) (models.Listing, error) {
	var l models.Listing
	var location, duration, latitude, longitude, mainImage, images, images360 sql.NullString

	if kind.Multilingual {
		err := rows.Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt,
			&l.NameFR, &l.NameEN, &l.NameAR, &l.DescriptionFR, &l.DescriptionEN, &l.DescriptionAR,
			&location, &duration, &latitude, &longitude, &l.Price, &mainImage, &images, &images360)
		if err != nil {
			return l, err
		}
	} else {
		var description, specialty sql.NullString
		err := rows.Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt,
			&l.Name, &description, &specialty,
			&location, &latitude, &longitude, &l.Price, &mainImage, &images, &images360)
		if err != nil {
			return l, err
		}
		l.Description = description.String
		l.Specialty = specialty.String
	}

	l.Location = location.String
	l.Duration = duration.String
	l.Latitude = latitude.String
	l.Longitude = longitude.String
	l.MainImage = mainImage.String
	l.Images = images.String
	l.Images360 = images360.String
	return l, nil
}
