// ABOUTME: Reference models for the training catalog: muscles, objectives, frequency levels.
// ABOUTME: Also derives the stable muscle keys used by the body-map selector.
package models

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Muscle is a target muscle group selectable on the body map.
type Muscle struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Key returns the body-map key for the muscle (see MuscleKey).
func (m Muscle) Key() string {
	return MuscleKey(m.Name)
}

// Objective is a training goal such as hypertrophy.
type Objective struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// FrequencyLevel is a self-reported weekly training-volume band.
type FrequencyLevel struct {
	ID    int64  `json:"id" yaml:"id"`
	Level string `json:"level" yaml:"level"`
}

// MuscleKey folds a muscle display name into an ASCII lookup key:
// diacritics are stripped, letters lowercased and inner whitespace
// collapsed to underscores. "Cuádriceps" becomes "cuadriceps".
func MuscleKey(name string) string {
	// Chained transformers keep state, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.ToLower(strings.Join(strings.Fields(folded), "_"))
}
