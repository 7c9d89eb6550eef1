package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
)

const (
	defaultGeocodingURL = "https://api.openweathermap.org/geo/1.0/direct"
	defaultWeatherURL   = "https://api.openweathermap.org/data/2.5/weather"
)

// WeatherTool fetches real weather data for a location via the
// OpenWeatherMap geocoding and current-weather APIs.
//
// Every failure path is returned as a descriptive text value rather than
// an error, so the calling layer always has a sentence to hand back to
// the end user.
type WeatherTool struct {
	apiKey       string
	geocodingURL string
	weatherURL   string
	client       *http.Client
}

// NewWeatherTool creates a weather tool backed by the public
// OpenWeatherMap endpoints.
func NewWeatherTool(apiKey string) *WeatherTool {
	return &WeatherTool{
		apiKey:       apiKey,
		geocodingURL: defaultGeocodingURL,
		weatherURL:   defaultWeatherURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewWeatherToolWithEndpoints creates a weather tool against custom
// endpoints. Used by tests to point at a local server.
func NewWeatherToolWithEndpoints(apiKey, geocodingURL, weatherURL string, client *http.Client) *WeatherTool {
	t := NewWeatherTool(apiKey)
	t.geocodingURL = geocodingURL
	t.weatherURL = weatherURL
	if client != nil {
		t.client = client
	}
	return t
}

// Name returns the tool's identifier.
func (t *WeatherTool) Name() string {
	return "get_weather"
}

// Description returns a description of the tool's purpose.
func (t *WeatherTool) Description() string {
	return "Get real weather data for a given location using OpenWeatherMap API"
}

// Declaration returns the function declaration for LLM integration.
func (t *WeatherTool) Declaration() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"location": map[string]any{
				"type":        "string",
				"description": "The location to get the weather for (e.g., 'London', 'New York').",
			},
		},
		"required": []string{"location"},
	}
}

// Execute implements the Tool interface.
func (t *WeatherTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	location, _ := args["location"].(string)
	if location == "" {
		return "", fmt.Errorf("missing required parameter 'location'")
	}
	return t.GetWeather(ctx, location), nil
}

// GetWeather resolves the location and returns the raw provider payload
// plus a one-line human summary. It never returns an error: every failure
// is mapped to a user-readable string.
func (t *WeatherTool) GetWeather(ctx context.Context, location string) string {
	if t.apiKey == "" {
		return "Weather API key not configured. Please set OPENWEATHER_API_KEY in .env file."
	}

	geoParams := url.Values{}
	geoParams.Set("q", location)
	geoParams.Set("limit", "1")
	geoParams.Set("appid", t.apiKey)

	// Never log the API key.
	log.Printf("Geocoding request: %s?q=%s&limit=1&appid=***", t.geocodingURL, location)

	var geoData []map[string]any
	if msg := t.getJSON(ctx, t.geocodingURL+"?"+geoParams.Encode(), &geoData); msg != "" {
		return msg
	}
	if len(geoData) == 0 {
		return fmt.Sprintf("Could not find coordinates for '%s'. Please check the location name.", location)
	}

	lat, msg := floatField(geoData[0], "lat")
	if msg != "" {
		return msg
	}
	lon, msg := floatField(geoData[0], "lon")
	if msg != "" {
		return msg
	}

	weatherParams := url.Values{}
	weatherParams.Set("lat", fmt.Sprintf("%v", lat))
	weatherParams.Set("lon", fmt.Sprintf("%v", lon))
	weatherParams.Set("appid", t.apiKey)
	weatherParams.Set("units", "metric")

	log.Printf("Weather request: %s?lat=%v&lon=%v&appid=***&units=metric", t.weatherURL, lat, lon)

	var weatherData map[string]any
	if msg := t.getJSON(ctx, t.weatherURL+"?"+weatherParams.Encode(), &weatherData); msg != "" {
		return msg
	}

	return formatWeather(location, geoData[0], weatherData)
}

// getJSON performs a GET and decodes the JSON body into out. A non-empty
// return value is the user-facing error text for the failure.
func (t *WeatherTool) getJSON(ctx context.Context, requestURL string, out any) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Sprintf("Unexpected error getting weather: %s", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Sprintf("Network/connection error fetching weather data: %s", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Sprintf("Network/connection error fetching weather data: %s", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return providerError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Sprintf("Unexpected error getting weather: %s", err)
	}
	return ""
}

// providerError surfaces OpenWeatherMap's own error message when the
// response body carries one.
func providerError(status int, body []byte) string {
	msg := fmt.Sprintf("OpenWeatherMap API error (%d).", status)

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		if details, ok := payload["message"].(string); ok && details != "" {
			msg += fmt.Sprintf(" Details: %s", details)
		}
	}
	return msg
}

// formatWeather builds the two-part response: the full raw API payload as
// a JSON code block, followed by a short human summary. Returning the raw
// JSON ensures the agent can pass it through verbatim.
func formatWeather(location string, geocoding, weather map[string]any) string {
	main, ok := weather["main"].(map[string]any)
	if !ok {
		return missingField("main")
	}
	temp, msg := floatField(main, "temp")
	if msg != "" {
		return msg
	}
	humidity, msg := floatField(main, "humidity")
	if msg != "" {
		return msg
	}

	conditions, ok := weather["weather"].([]any)
	if !ok || len(conditions) == 0 {
		return missingField("weather")
	}
	first, ok := conditions[0].(map[string]any)
	if !ok {
		return missingField("weather")
	}
	description, ok := first["description"].(string)
	if !ok {
		return missingField("description")
	}

	rawPayload := struct {
		Geocoding map[string]any `json:"geocoding"`
		Weather   map[string]any `json:"weather"`
	}{Geocoding: geocoding, Weather: weather}

	rawJSON, err := json.MarshalIndent(rawPayload, "", "  ")
	if err != nil {
		return fmt.Sprintf("Unexpected error getting weather: %s", err)
	}

	summary := fmt.Sprintf(
		"The weather in %s is %s with a temperature of %v°C and humidity of %v%%.",
		titleCase(location), titleCase(description), temp, humidity,
	)

	return "FULL_OPENWEATHERMAP_API_RESPONSE (JSON):\n" +
		"```json\n" + string(rawJSON) + "\n```\n\n" +
		"SUMMARY:\n" + summary
}

func missingField(field string) string {
	return fmt.Sprintf("Error parsing weather data: Missing field '%s'. This might be due to API limitations.", field)
}

// floatField extracts a numeric field from a decoded JSON object. The
// second return value is the user-facing error text when the field is
// absent or not a number.
func floatField(obj map[string]any, field string) (float64, string) {
	v, ok := obj[field]
	if !ok {
		return 0, missingField(field)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, missingField(field)
	}
	return f, ""
}

// titleCase upper-cases the first letter of every word, leaving the rest
// lower-cased, matching the provider's display convention.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
