package config

import "strings"

// Difficulty is the label a level file carries in its metadata.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// MetadataKey is the level metadata key holding the difficulty label.
const MetadataKey = "difficulty"

// ParseDifficulty converts a label to a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyHard:
		return DifficultyHard, true
	default:
		return "", false
	}
}

// DifficultyOf returns the difficulty recorded in level metadata.
// Levels without a valid label are normal.
func DifficultyOf(metadata map[string]string) Difficulty {
	if d, ok := ParseDifficulty(metadata[MetadataKey]); ok {
		return d
	}
	return DifficultyNormal
}
