// Package core defines the editor document store abstraction shared by the
// storage backends.
package core

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Driver identifies a backend.
type Driver string

const (
	DriverFS       Driver = "fs"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverS3       Driver = "s3"
	DriverMemory   Driver = "memory"
)

var (
	// ErrNotFound is returned by Load for a document never saved.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidName is returned for names that are empty or contain path elements.
	ErrInvalidName = errors.New("invalid document name")
)

// Documents stores named JSON documents.
type Documents interface {
	// Load returns the document body or ErrNotFound.
	Load(ctx context.Context, name string) ([]byte, error)
	// Save stores data and reports whether anything was written; an
	// unchanged body is skipped.
	Save(ctx context.Context, name string, data []byte) (bool, error)
	Close() error
	Driver() Driver
}

// Fingerprint returns the hex BLAKE2b-256 digest of data.
func Fingerprint(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ValidateName rejects names unusable as a file name or object key segment.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}
