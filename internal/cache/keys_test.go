package cache

import (
	"strings"
	"testing"

	"studyquiz/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	key := GenerateCacheKey("quiz", "generated", "abc")
	assert.Equal(t, "studyquiz:quiz:generated:abc", key)

	keyWithParams := GenerateCacheKey("quiz", "generated", "abc", "p1", "p2")
	assert.Equal(t, "studyquiz:quiz:generated:abc:p1_p2", keyWithParams)
}

func TestQuizGenerationKey(t *testing.T) {
	base := domain.GenerationRequest{
		SourceText: "The mitochondria is the powerhouse of the cell.",
		Count:      5,
		Difficulty: domain.DifficultyNormal,
		Language:   "English",
	}

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, QuizGenerationKey(base), QuizGenerationKey(base))
	})

	t.Run("prefixed", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(QuizGenerationKey(base), "studyquiz:quiz:generated:"))
	})

	t.Run("every field participates", func(t *testing.T) {
		variants := []domain.GenerationRequest{
			{SourceText: "other text", Count: 5, Difficulty: domain.DifficultyNormal, Language: "English"},
			{SourceText: base.SourceText, Count: 7, Difficulty: domain.DifficultyNormal, Language: "English"},
			{SourceText: base.SourceText, Count: 5, Difficulty: domain.DifficultyHard, Language: "English"},
			{SourceText: base.SourceText, Count: 5, Difficulty: domain.DifficultyNormal, Language: "Hindi"},
		}
		for _, v := range variants {
			assert.NotEqual(t, QuizGenerationKey(base), QuizGenerationKey(v))
		}
	})
}
