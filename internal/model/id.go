package model

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// IDGenerator produces a new record id.
type IDGenerator func() string

const (
	shortIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	shortIDLength   = 16
)

// GenerateID returns a 16 character base36 id. At that length collisions are
// negligible for a local collection.
func GenerateID() string {
	id, err := gonanoid.Generate(shortIDAlphabet, shortIDLength)
	if err != nil {
		// crypto/rand failure; fall back to a uuid rather than an empty id
		return GenerateUUID()
	}
	return id
}

// GenerateUUID creates a new UUID string.
func GenerateUUID() string {
	return uuid.New().String()
}

// IDScheme names an id generator in configuration.
type IDScheme string

const (
	IDSchemeShort IDScheme = "short"
	IDSchemeUUID  IDScheme = "uuid"
)

// Generator returns the IDGenerator for the scheme, defaulting to GenerateID.
func (s IDScheme) Generator() IDGenerator {
	if s == IDSchemeUUID {
		return GenerateUUID
	}
	return GenerateID
}
