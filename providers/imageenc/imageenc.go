// Package imageenc normalizes image payloads between the two wire shapes
// the providers expect: raw base64 embedded in JSON and decoded bytes for
// multipart uploads.
package imageenc

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const dataURIPrefix = "data:"

// StripDataURI removes a data-URI prefix ("data:image/jpeg;base64,...")
// when present, leaving bare base64.
func StripDataURI(image string) string {
	if !strings.HasPrefix(image, dataURIPrefix) {
		return image
	}
	if idx := strings.Index(image, ","); idx != -1 {
		return image[idx+1:]
	}
	return image
}

// ToDataURI ensures the payload carries a data-URI prefix, defaulting to
// image/jpeg when none was supplied.
func ToDataURI(image string) string {
	if strings.HasPrefix(image, dataURIPrefix) {
		return image
	}
	return fmt.Sprintf("data:image/jpeg;base64,%s", image)
}

// Decode turns a base64 or data-URI payload into raw bytes for transports
// that upload the image as a file part.
func Decode(image string) ([]byte, error) {
	raw := StripDataURI(image)
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image: %w", err)
	}
	return data, nil
}
