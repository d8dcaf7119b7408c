package auth

import (
	"fmt"
	"strings"
)

// KeyKind is the kind of PostHog API key, derived from its prefix
type KeyKind string

const (
	KeyPersonal KeyKind = "personal" // phx_, can call the private REST API
	KeyProject  KeyKind = "project"  // phc_, ingestion only
	KeyUnknown  KeyKind = "unknown"
)

const (
	personalKeyPrefix = "phx_"
	projectKeyPrefix  = "phc_"
)

// ClassifyKey returns the kind of an API key
func ClassifyKey(key string) KeyKind {
	switch {
	case strings.HasPrefix(key, personalKeyPrefix):
		return KeyPersonal
	case strings.HasPrefix(key, projectKeyPrefix):
		return KeyProject
	default:
		return KeyUnknown
	}
}

// CheckKey reports why a key cannot be used to manage playlists, or nil.
// Unknown keys pass; self-hosted instances may issue other formats.
func CheckKey(key string) error {
	if ClassifyKey(key) == KeyProject {
		return fmt.Errorf("%s... is a project API key; playlists need a personal API key (%s...)",
			projectKeyPrefix, personalKeyPrefix)
	}
	return nil
}
