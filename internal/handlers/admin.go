package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/AymanChabbaki/safaria-sub000/internal/database"
	"github.com/AymanChabbaki/safaria-sub000/internal/middleware"
	"github.com/AymanChabbaki/safaria-sub000/internal/models"
	"github.com/AymanChabbaki/safaria-sub000/internal/services"
	"github.com/go-chi/chi/v5"
)

// ListingInput is the admin create/update payload. Image arrays arrive
// as JSON arrays and are stored re-encoded; coordinates are stored as
// the strings given, clients coerce on read.
type ListingInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Specialty   string `json:"specialty"`

	NameFR        string `json:"name_fr"`
	NameEN        string `json:"name_en"`
	NameAR        string `json:"name_ar"`
	DescriptionFR string `json:"description_fr"`
	DescriptionEN string `json:"description_en"`
	DescriptionAR string `json:"description_ar"`

	Location  string   `json:"location"`
	Duration  string   `json:"duration"`
	Latitude  string   `json:"latitude"`
	Longitude string   `json:"longitude"`
	Price     float64  `json:"price"`
	MainImage string   `json:"main_image"`
	Images    []string `json:"images"`
	Images360 []string `json:"images360"`
}

func (in ListingInput) validateFor(kind models.ListingKind) string {
	if kind.Multilingual {
		if strings.TrimSpace(in.NameFR) == "" {
			return "name_fr is required"
		}
	} else {
		if strings.TrimSpace(in.Name) == "" {
			return "name is required"
		}
	}
	if in.Price < 0 {
		return "price must not be negative"
	}
	return ""
}

func encodeImages(images []string) string {
	if images == nil {
		images = []string{}
	}
	raw, _ := json.Marshal(images)
	return string(raw)
}

// CreateListing inserts a new row of the kind named in the URL.
func CreateListing(w http.ResponseWriter, r *http.Request) {
	kind, ok := models.KindByName(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown listing type")
		return
	}

	var in ListingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := in.validateFor(kind); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var id int64
	var err error
	if kind.Multilingual {
		err = database.PostgresDB.QueryRowContext(r.Context(), `
			INSERT INTO `+kind.Table+` (created_at, updated_at,
				name_fr, name_en, name_ar, description_fr, description_en, description_ar,
				location, duration, latitude, longitude, price, main_image, images, images360)
			VALUES (NOW(), NOW(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING id
		`, in.NameFR, in.NameEN, in.NameAR, in.DescriptionFR, in.DescriptionEN, in.DescriptionAR,
			in.Location, in.Duration, in.Latitude, in.Longitude, in.Price,
			in.MainImage, encodeImages(in.Images), encodeImages(in.Images360)).Scan(&id)
	} else {
		err = database.PostgresDB.QueryRowContext(r.Context(), `
			INSERT INTO `+kind.Table+` (created_at, updated_at,
				name, description, specialty,
				location, latitude, longitude, price, main_image, images, images360)
			VALUES (NOW(), NOW(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`, in.Name, in.Description, in.Specialty,
			in.Location, in.Latitude, in.Longitude, in.Price,
			in.MainImage, encodeImages(in.Images), encodeImages(in.Images360)).Scan(&id)
	}
	if err != nil {
		log.Printf("ERROR: failed to create %s: %v", kind.Name, err)
		writeError(w, http.StatusInternalServerError, "Failed to create listing")
		return
	}

	services.Listings.Invalidate(r.Context(), kind)
	services.PublishListingChange(r.Context(), kind.Name, id, "created")

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Listing created",
		"id":      id,
	})
}

// UpdateListing replaces the mutable fields of an existing row.
func UpdateListing(w http.ResponseWriter, r *http.Request) {
	kind, ok := models.KindByName(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown listing type")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid listing id")
		return
	}

	var in ListingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := in.validateFor(kind); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var result int64
	if kind.Multilingual {
		res, execErr := database.PostgresDB.ExecContext(r.Context(), `
			UPDATE `+kind.Table+` SET updated_at = NOW(),
				name_fr = $1, name_en = $2, name_ar = $3,
				description_fr = $4, description_en = $5, description_ar = $6,
				location = $7, duration = $8, latitude = $9, longitude = $10,
				price = $11, main_image = $12, images = $13, images360 = $14
			WHERE id = $15
		`, in.NameFR, in.NameEN, in.NameAR, in.DescriptionFR, in.DescriptionEN, in.DescriptionAR,
			in.Location, in.Duration, in.Latitude, in.Longitude, in.Price,
			in.MainImage, encodeImages(in.Images), encodeImages(in.Images360), id)
		if execErr != nil {
			err = execErr
		} else {
			result, _ = res.RowsAffected()
		}
	} else {
		res, execErr := database.PostgresDB.ExecContext(r.Context(), `
			UPDATE `+kind.Table+` SET updated_at = NOW(),
				name = $1, description = $2, specialty = $3,
				location = $4, latitude = $5, longitude = $6,
				price = $7, main_image = $8, images = $9, images360 = $10
			WHERE id = $11
		`, in.Name, in.Description, in.Specialty,
			in.Location, in.Latitude, in.Longitude, in.Price,
			in.MainImage, encodeImages(in.Images), encodeImages(in.Images360), id)
		if execErr != nil {
			err = execErr
		} else {
			result, _ = res.RowsAffected()
		}
	}
	if err != nil {
		log.Printf("ERROR: failed to update %s %d: %v", kind.Name, id, err)
		writeError(w, http.StatusInternalServerError, "Failed to update listing")
		return
	}
	if result == 0 {
		writeError(w, http.StatusNotFound, "Listing not found")
		return
	}

	services.Listings.Invalidate(r.Context(), kind)
	services.PublishListingChange(r.Context(), kind.Name, id, "updated")

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Listing updated"})
}

// UnblockIP lifts a rate-limit block before its 24h expiry.
func UnblockIP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.IP) == "" {
		writeError(w, http.StatusBadRequest, "ip is required")
		return
	}
	if err := middleware.UnblockIP(r, strings.TrimSpace(req.IP)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to unblock IP")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "IP unblocked"})
}

// DeleteListing removes a row. Reservations referencing it are kept;
// their listing_id simply stops resolving.
func DeleteListing(w http.ResponseWriter, r *http.Request) {
	kind, ok := models.KindByName(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown listing type")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid listing id")
		return
	}

	res, err := database.PostgresDB.ExecContext(r.Context(),
		"DELETE FROM "+kind.Table+" WHERE id = $1", id)
	if err != nil {
		log.Printf("ERROR: failed to delete %s %d: %v", kind.Name, id, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete listing")
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		writeError(w, http.StatusNotFound, "Listing not found")
		return
	}

	services.Listings.Invalidate(r.Context(), kind)
	services.PublishListingChange(r.Context(), kind.Name, id, "deleted")

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Listing deleted"})
}
