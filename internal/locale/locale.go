// Package locale holds the static registry of supported locales.
// The processing set is what language detection may return; the display
// set collapses simplified Chinese into traditional, since only
// traditional-script content is ever shown to users.
package locale

// DefaultLocale is the fallback for any unrecognized code and also the
// processing locale all knowledge-base content is authored in.
const DefaultLocale = "en"

// SupportedLocales is the full processing set used as detection candidates.
var SupportedLocales = []string{"en", "es", "ko", "zh-Hans", "zh-Hant", "vi", "ru"}

// DisplayLocales is the subset ever shown or selectable in UI.
var DisplayLocales = []string{"en", "es", "ko", "zh-Hant", "vi", "ru"}

// pathNames maps a locale to the site path segment used by the
// automated URL mapping.
var pathNames = map[string]string{
	"es":      "spanish-espanol",
	"ko":      "korean",
	"zh-Hans": "chinese",
	"zh-Hant": "chinese",
	"ru":      "russian",
	"vi":      "vietnamese",
}

// NormalizeForDisplay maps zh-Hans to zh-Hant and any locale outside the
// display set to "en". Idempotent over the display set.
func NormalizeForDisplay(loc string) string {
	if loc == "zh-Hans" {
		return "zh-Hant"
	}
	if IsDisplayLocale(loc) {
		return loc
	}
	return DefaultLocale
}

// IsProcessingLocale reports whether loc is in the processing set.
func IsProcessingLocale(loc string) bool {
	for _, l := range SupportedLocales {
		if l == loc {
			return true
		}
	}
	return false
}

// IsDisplayLocale reports whether loc is in the display set.
func IsDisplayLocale(loc string) bool {
	for _, l := range DisplayLocales {
		if l == loc {
			return true
		}
	}
	return false
}

// PathName returns the site path segment for loc.
func PathName(loc string) (string, bool) {
	name, ok := pathNames[loc]
	return name, ok
}
