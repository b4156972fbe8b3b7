package uuid

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// namespace for deterministic IDs derived from generation inputs.
// Fixed forever; changing it would reshuffle every generated world's IDs.
var worldNamespace = uuid.MustParse("7b1e3d52-9c44-4a6f-8f0a-2d5b9e7c1a30")

// Normalize removes dashes from UUID string for consistent comparison
func Normalize(uuidStr string) string {
	return strings.ReplaceAll(uuidStr, "-", "")
}

// ParseToHexString converts any UUID format to 32-char hex string
func ParseToHexString(uuidStr string) (string, error) {
	// Parse standard UUID format (handles both with/without dashes)
	parsed, err := uuid.Parse(uuidStr)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(parsed[:]), nil
}

// Compare compares two UUIDs regardless of format (with/without dashes)
func Compare(uuid1, uuid2 string) bool {
	return Normalize(uuid1) == Normalize(uuid2)
}

// ValidateAndNormalize validates UUID format and returns normalized version without dashes
func ValidateAndNormalize(uuidStr string) (string, error) {
	_, err := uuid.Parse(uuidStr)
	if err != nil {
		return "", err
	}
	return Normalize(uuidStr), nil
}

// ValidateFormat checks if a string is a valid UUID format (with or without dashes)
func ValidateFormat(uuidStr string) bool {
	_, err := uuid.Parse(uuidStr)
	return err == nil
}

// GenerateNew generates a new UUID and returns it in standard format with dashes
func GenerateNew() string {
	return uuid.New().String()
}

// GenerateNewNormalized generates a new UUID and returns it in normalized format without dashes
func GenerateNewNormalized() string {
	return Normalize(uuid.New().String())
}

// DeriveFromString returns a version-5 UUID derived from name. The same name
// always yields the same UUID, which keeps generated entity IDs stable across
// runs with the same seed.
func DeriveFromString(name string) string {
	return uuid.NewSHA1(worldNamespace, []byte(name)).String()
}

// DeriveFromStringNormalized is DeriveFromString without dashes
func DeriveFromStringNormalized(name string) string {
	return Normalize(DeriveFromString(name))
}
