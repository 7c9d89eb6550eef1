package agent

import (
	"regexp"
	"strings"
)

// Weather queries bypass the language model entirely: the tool output is
// returned verbatim so downstream orchestrators always get the raw API
// payload instead of a paraphrase.
var (
	weatherWordRe = regexp.MustCompile(`(?i)\bweather\b`)

	// "weather in Karachi", "weather for London" — capture everything
	// after in/for up to the end of the line.
	locationRe = regexp.MustCompile(`(?i)\bweather\b.*?\b(?:in|for)\s+([^?\n\r]+)`)

	// Separators and continuation phrases that end the place name, e.g.
	// "Faisalabad, including temperature..." -> "Faisalabad".
	locationDelimRe = regexp.MustCompile(`(?i)\s*(?:,|;|\.|\(|\)|\bincluding\b|\bwith\b|\bshow\b|\bgive\b|\band\b)\s*`)
)

// IsWeatherQuery reports whether the query asks about weather, via a
// case-insensitive whole-word match.
func IsWeatherQuery(query string) bool {
	return weatherWordRe.MatchString(query)
}

// ExtractLocation pulls the place name out of a weather query for
// geocoding. Callers often send queries like "weather in Faisalabad,
// including temperature and humidity"; only the actual place name is
// wanted, not the rest of the request.
func ExtractLocation(query string) string {
	location := strings.TrimSpace(query)
	if m := locationRe.FindStringSubmatch(query); m != nil {
		location = strings.TrimSpace(m[1])
	}

	if parts := locationDelimRe.Split(location, 2); len(parts) > 0 {
		location = parts[0]
	}

	location = strings.TrimSpace(location)
	location = strings.TrimRight(location, "?")
	return strings.TrimSpace(location)
}
