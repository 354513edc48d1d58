package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"

	"service-desk/config"
	apperrors "service-desk/pkg/errors"
)

// ValidateFile checks size and sniffed MIME type against
// config.UploadContexts[contextName] and returns the detected type. The
// reader is rewound before returning.
func ValidateFile(fileHeader *multipart.FileHeader, file io.ReadSeeker, contextName string) (string, error) {
	rules, ok := config.UploadContexts[contextName]
	if !ok {
		return "", fmt.Errorf("unknown upload context %q", contextName)
	}

	if rules.MaxSizeMB > 0 {
		maxSizeBytes := rules.MaxSizeMB * 1024 * 1024
		if fileHeader.Size > maxSizeBytes {
			return "", apperrors.NewInvalidInputError("file size %.2f MB exceeds the %d MB limit", float64(fileHeader.Size)/1024/1024, rules.MaxSizeMB)
		}
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read file header: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind file: %w", err)
	}

	mimeType := http.DetectContentType(buffer[:n])
	if !slices.Contains(rules.AllowedMimeTypes, mimeType) {
		return "", apperrors.NewInvalidInputError("file type %s is not allowed", mimeType)
	}
	return mimeType, nil
}
