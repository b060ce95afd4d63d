package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"studyquiz/internal/domain"
)

const (
	GlobalKeyPrefix = "studyquiz"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuizGenerationKey derives the cache key for a generation request. The
// source text can be arbitrarily large, so the request is hashed rather than
// embedded; every field participates so that a Level 2 regeneration (same
// text, difficulty "hard") never collides with the Level 1 entry.
func QuizGenerationKey(req domain.GenerationRequest) string {
	h := sha256.New()
	h.Write([]byte(req.SourceText))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(req.Count)))
	h.Write([]byte{0})
	h.Write([]byte(req.Difficulty))
	h.Write([]byte{0})
	h.Write([]byte(req.Language))
	return GenerateCacheKey("quiz", "generated", hex.EncodeToString(h.Sum(nil)))
}
