package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")

	reg := regexp.MustCompile("[^a-z0-9-]")
	s = reg.ReplaceAllString(s, "")

	reg = regexp.MustCompile("-+")
	s = reg.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// GenerateReceiptNo generates a unique receipt number like VND-20260830-3F2A91C4.
func GenerateReceiptNo() string {
	return fmt.Sprintf("VND-%s-%s", time.Now().Format("20060102"), strings.ToUpper(uuid.New().String()[:8]))
}

// GenerateBarcode generates a placeholder internal barcode for products without one
func GenerateBarcode() string {
	return "INT-" + strings.ToUpper(uuid.New().String()[:12])
}
