package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// DocumentUUID fingerprints markup so identical sources map to the same id
// across parses.
func DocumentUUID(source string) uuid.UUID {
	if strings.TrimSpace(source) == "" {
		return uuid.Nil
	}
	return UUID("confluence:document:" + source)
}

// NodeUUID derives a stable id for the node found at path inside document.
func NodeUUID(document uuid.UUID, path []int) uuid.UUID {
	parts := make([]string, len(path))
	for i, idx := range path {
		parts[i] = strconv.Itoa(idx)
	}
	return UUID("confluence:node:" + document.String() + ":" + strings.Join(parts, "."))
}
