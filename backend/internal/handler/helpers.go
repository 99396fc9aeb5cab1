package handler

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/cathome-dev/cathome/shared/domain"
	internal_errors "github.com/cathome-dev/cathome/shared/errors"
)

func parseIntParam(param string, name string) (int, error) {
	value, err := strconv.Atoi(param)
	if err != nil {
		return 0, fmt.Errorf("parameter %s should be a number", name)
	}
	return value, nil
}

func parseInt64Param(param string, name string) (int64, error) {
	value, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %s should be a number", name)
	}
	return value, nil
}

// formImage extracts the optional "image" part of a multipart form. A
// missing part returns (nil, nil); the caller owns closing the reader via
// r.MultipartForm cleanup on request end.
func (h *Handler) formImage(r *http.Request) (*domain.PendingImage, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, internal_errors.Validation("Invalid image upload")
	}

	maxSize := h.cfg.Public.MaxImageSizeBytes
	if maxSize > 0 && header.Size > maxSize {
		file.Close()
		return nil, internal_errors.Validation(fmt.Sprintf("Image is larger than %d bytes", maxSize))
	}

	mimeType := header.Header.Get("Content-Type")
	allowed := h.cfg.Public.AllowedImageMimeTypes
	if len(allowed) > 0 && !slices.Contains(allowed, mimeType) {
		file.Close()
		return nil, internal_errors.Validation(fmt.Sprintf("Image type %q is not allowed", mimeType))
	}

	filename := sanitizeFilename(header.Filename)
	if filename == "" {
		filename = "image"
	}

	return &domain.PendingImage{
		Filename:  filename,
		SizeBytes: header.Size,
		MimeType:  mimeType,
		Data:      file,
	}, nil
}

// sanitizeFilename keeps only the base name and replaces characters that
// would complicate object keys or URLs.
func sanitizeFilename(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), ".")
}
