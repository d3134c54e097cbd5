package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeForDisplay(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"english unchanged", "en", "en"},
		{"spanish unchanged", "es", "es"},
		{"simplified chinese collapses to traditional", "zh-Hans", "zh-Hant"},
		{"traditional chinese unchanged", "zh-Hant", "zh-Hant"},
		{"unknown code falls back to english", "fr", "en"},
		{"empty code falls back to english", "", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeForDisplay(tt.input))
		})
	}
}

func TestNormalizeForDisplay_Idempotent(t *testing.T) {
	for _, loc := range DisplayLocales {
		once := NormalizeForDisplay(loc)
		twice := NormalizeForDisplay(once)
		assert.Equal(t, once, twice, "normalization of %q must be idempotent", loc)
	}
	// The processing set must also stabilize after one application.
	for _, loc := range SupportedLocales {
		once := NormalizeForDisplay(loc)
		assert.Equal(t, once, NormalizeForDisplay(once))
	}
}

func TestIsProcessingLocale(t *testing.T) {
	assert.True(t, IsProcessingLocale("zh-Hans"))
	assert.True(t, IsProcessingLocale("en"))
	assert.False(t, IsProcessingLocale("fr"))
}

func TestIsDisplayLocale(t *testing.T) {
	assert.False(t, IsDisplayLocale("zh-Hans"))
	assert.True(t, IsDisplayLocale("zh-Hant"))
}

func TestPathName(t *testing.T) {
	name, ok := PathName("ko")
	assert.True(t, ok)
	assert.Equal(t, "korean", name)

	// Both Chinese scripts share one site section.
	hans, _ := PathName("zh-Hans")
	hant, _ := PathName("zh-Hant")
	assert.Equal(t, hans, hant)

	_, ok = PathName("en")
	assert.False(t, ok)
}
