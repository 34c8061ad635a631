package services

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// deliveryTokenBytes gives 256 bits of entropy; the encoded token is the
// whole capability, so guessing resistance is all it has.
const deliveryTokenBytes = 32

// GenerateDeliveryToken returns an opaque URL-safe token. It carries no
// job id or other structure; the only way from token to job is the
// database row it gets stored on.
func GenerateDeliveryToken() (string, error) {
	buf := make([]byte, deliveryTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate delivery token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
