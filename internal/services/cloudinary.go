package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/disintegration/imaging"
)

// maxImageWidth: anything wider gets downscaled before upload so the
// gallery never serves multi-megabyte originals.
const maxImageWidth = 1600

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryService{cld: cld}, nil
}

// UploadFile uploads a file to Cloudinary and returns its secure URL.
// JPEG/PNG content is recompressed and resized when oversized; other
// content is uploaded as-is.
func (s *CloudinaryService) UploadFile(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	if isImageUpload(header) {
		if resized, ok := resizeImage(fileBytes); ok {
			fileBytes = resized
		}
	}

	uploadResult, err := s.cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	return uploadResult.SecureURL, nil
}

// UploadFileFromHeader opens and uploads a multipart file header.
func (s *CloudinaryService) UploadFileFromHeader(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return s.UploadFile(ctx, file, fileHeader, folder)
}

func isImageUpload(header *multipart.FileHeader) bool {
	if header == nil {
		return false
	}
	ct := header.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "image/")
}

// resizeImage decodes, downscales and re-encodes an image as JPEG.
// Returns ok=false when decoding fails; the caller then uploads the
// original bytes untouched.
func resizeImage(raw []byte) ([]byte, bool) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, false
	}
	if img.Bounds().Dx() <= maxImageWidth {
		return nil, false
	}
	resized := imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}
