package forecast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openclimb/cragcast/internal/config"
	"github.com/openclimb/cragcast/pkg/logger"
)

func testForecastConfig(baseURL string) config.ForecastConfig {
	return config.ForecastConfig{
		BaseURL:               baseURL,
		RequestTimeoutSeconds: 5,
		RateLimitRPS:          1000,
		RateLimitBurst:        100,
		APIKeyEnv:             "OPENWEATHER_API_KEY",
		APIKey:                "test-key",
	}
}

func TestClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("lat") != "42.5949" {
			t.Errorf("lat = %q, want 42.5949", q.Get("lat"))
		}
		if q.Get("lon") != "-72.3678" {
			t.Errorf("lon = %q, want -72.3678", q.Get("lon"))
		}
		if q.Get("appid") != "test-key" {
			t.Errorf("appid = %q, want test-key", q.Get("appid"))
		}
		if q.Get("units") != "metric" {
			t.Errorf("units = %q, want metric", q.Get("units"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"city":{"name":"Farley"},"list":[{"dt":1700000000,"main":{"temp":15,"humidity":55}}]}`))
	}))
	defer server.Close()

	client := NewClient(testForecastConfig(server.URL), logger.Nop())
	loc := config.Location{Name: "Farley", Lat: 42.5949, Lon: -72.3678}

	resp, err := client.Fetch(context.Background(), loc)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(resp.List) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(resp.List))
	}
	if resp.List[0].Main.Temp != 15 {
		t.Errorf("Temp = %v, want 15", resp.List[0].Main.Temp)
	}
}

func TestClientFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(testForecastConfig(server.URL), logger.Nop())
	loc := config.Location{Name: "Farley", Lat: 42.5949, Lon: -72.3678}

	if _, err := client.Fetch(context.Background(), loc); err == nil {
		t.Fatal("expected error for non-200 response, got nil")
	}
}

func TestServiceFetchAllDegradesFailedLocation(t *testing.T) {
	// One location succeeds, one hits a failing endpoint. The failure must
	// degrade to an empty series carrying the error, never abort the batch.
	okServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") == "1" {
			w.Write([]byte(`{"list":[{"dt":1700000000,"main":{"temp":15,"humidity":55}}]}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer okServer.Close()

	client := NewClient(testForecastConfig(okServer.URL), logger.Nop())
	locations := []config.Location{
		{Name: "Good", Lat: 1, Lon: 1},
		{Name: "Bad", Lat: 2, Lon: 2},
	}
	service := NewService(client, locations, logger.Nop())

	results := service.FetchAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].Err != nil {
		t.Errorf("Good location returned error: %v", results[0].Err)
	}
	if len(results[0].Samples) != 1 {
		t.Errorf("Good location has %d samples, want 1", len(results[0].Samples))
	}

	if results[1].Err == nil {
		t.Error("Bad location should carry its fetch error")
	}
	if len(results[1].Samples) != 0 {
		t.Errorf("Bad location has %d samples, want 0", len(results[1].Samples))
	}
	if results[1].Location.Name != "Bad" {
		t.Errorf("degraded result lost its location: %q", results[1].Location.Name)
	}
}
