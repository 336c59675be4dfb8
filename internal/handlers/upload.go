package handlers

import (
	"log"
	"net/http"

	"github.com/AymanChabbaki/safaria-sub000/internal/services"
)

var cloudinaryService *services.CloudinaryService

// InitCloudinaryService wires the shared Cloudinary client into the
// handlers that accept file uploads. Safe to skip in environments
// without Cloudinary credentials; upload endpoints then return 500.
func InitCloudinaryService(service *services.CloudinaryService) {
	cloudinaryService = service
}

// UploadImage accepts a multipart "file" field and returns the hosted URL.
// Admin only; used by the listing management screens.
func UploadImage(w http.ResponseWriter, r *http.Request) {
	if cloudinaryService == nil {
		writeError(w, http.StatusInternalServerError, "File upload service not available")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	headers, ok := r.MultipartForm.File["file"]
	if !ok || len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "safaria/listings"
	}

	url, err := cloudinaryService.UploadFileFromHeader(r.Context(), headers[0], folder)
	if err != nil {
		log.Printf("ERROR: image upload failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "url": url})
}
