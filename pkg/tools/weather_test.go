package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestWeatherTool(geo, weather http.HandlerFunc) (*WeatherTool, func()) {
	geoServer := httptest.NewServer(geo)
	weatherServer := httptest.NewServer(weather)
	tool := NewWeatherToolWithEndpoints("test-key", geoServer.URL, weatherServer.URL, nil)
	return tool, func() {
		geoServer.Close()
		weatherServer.Close()
	}
}

func TestGetWeatherNoAPIKey(t *testing.T) {
	tool := NewWeatherTool("")
	got := tool.GetWeather(context.Background(), "London")
	want := "Weather API key not configured. Please set OPENWEATHER_API_KEY in .env file."
	if got != want {
		t.Errorf("GetWeather = %q, want %q", got, want)
	}
}

func TestGetWeatherUnknownLocation(t *testing.T) {
	tool, cleanup := newTestWeatherTool(
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "[]")
		},
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("weather endpoint called for unknown location")
		},
	)
	defer cleanup()

	got := tool.GetWeather(context.Background(), "Qwxzplace123")
	want := "Could not find coordinates for 'Qwxzplace123'. Please check the location name."
	if got != want {
		t.Errorf("GetWeather = %q, want %q", got, want)
	}
}

func TestGetWeatherProviderError(t *testing.T) {
	tool, cleanup := newTestWeatherTool(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"cod":401,"message":"Invalid API key"}`)
		},
		func(w http.ResponseWriter, r *http.Request) {},
	)
	defer cleanup()

	got := tool.GetWeather(context.Background(), "London")
	want := "OpenWeatherMap API error (401). Details: Invalid API key"
	if got != want {
		t.Errorf("GetWeather = %q, want %q", got, want)
	}
}

func TestGetWeatherSuccess(t *testing.T) {
	tool, cleanup := newTestWeatherTool(
		func(w http.ResponseWriter, r *http.Request) {
			if q := r.URL.Query().Get("q"); q != "faisalabad" {
				t.Errorf("geocode q = %q", q)
			}
			if r.URL.Query().Get("appid") != "test-key" {
				t.Errorf("geocode appid missing")
			}
			fmt.Fprint(w, `[{"name":"Faisalabad","lat":31.45,"lon":73.135,"country":"PK"}]`)
		},
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("units") != "metric" {
				t.Errorf("weather request units = %q", r.URL.Query().Get("units"))
			}
			fmt.Fprint(w, `{"main":{"temp":32.5,"humidity":40},"weather":[{"description":"clear sky"}],"name":"Faisalabad"}`)
		},
	)
	defer cleanup()

	got := tool.GetWeather(context.Background(), "faisalabad")

	if !strings.HasPrefix(got, "FULL_OPENWEATHERMAP_API_RESPONSE (JSON):\n```json\n") {
		t.Fatalf("missing raw payload header: %q", got)
	}
	for _, want := range []string{
		`"geocoding"`,
		`"weather"`,
		`"clear sky"`,
		"SUMMARY:\nThe weather in Faisalabad is Clear Sky with a temperature of 32.5°C and humidity of 40%.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("GetWeather output missing %q\nfull output:\n%s", want, got)
		}
	}
}

func TestGetWeatherMissingField(t *testing.T) {
	tool, cleanup := newTestWeatherTool(
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"lat":1.0,"lon":2.0}]`)
		},
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"weather":[{"description":"haze"}]}`)
		},
	)
	defer cleanup()

	got := tool.GetWeather(context.Background(), "Somewhere")
	want := "Error parsing weather data: Missing field 'main'. This might be due to API limitations."
	if got != want {
		t.Errorf("GetWeather = %q, want %q", got, want)
	}
}

func TestGetWeatherNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	tool := NewWeatherToolWithEndpoints("test-key", server.URL, server.URL, nil)
	got := tool.GetWeather(context.Background(), "London")
	if !strings.HasPrefix(got, "Network/connection error fetching weather data: ") {
		t.Errorf("GetWeather = %q", got)
	}
}

func TestWeatherToolExecute(t *testing.T) {
	tool := NewWeatherTool("")

	if _, err := tool.Execute(context.Background(), map[string]any{}); err == nil {
		t.Error("Execute with no location should error")
	}

	out, err := tool.Execute(context.Background(), map[string]any{"location": "London"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out, "Weather API key not configured") {
		t.Errorf("Execute = %q", out)
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"clear sky", "Clear Sky"},
		{"LONDON", "London"},
		{"new york", "New York"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := titleCase(tt.in); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
