package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/JusticeO21/weather-app-pma-assessment/internal/weather"
)

// Client fetches raw current-weather and forecast payloads from
// OpenWeatherMap. Calls are single-shot with no retry; a circuit breaker
// sheds load when the provider is unhealthy.
type Client struct {
	apiKey      string
	httpClient  *http.Client
	currentURL  string
	forecastURL string
	circuit     *gobreaker.CircuitBreaker
}

func NewClient(client *http.Client, apiKey string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:      apiKey,
		httpClient:  client,
		currentURL:  "https://api.openweathermap.org/data/2.5/weather",
		forecastURL: "https://api.openweathermap.org/data/2.5/forecast",
		circuit:     cb,
	}
}

// FetchCurrent returns the raw current-weather payload for a location.
func (c *Client) FetchCurrent(ctx context.Context, location string) (weather.CurrentPayload, error) {
	var payload weather.CurrentPayload

	u, err := c.buildURL(c.currentURL, location)
	if err != nil {
		return payload, err
	}
	if err := c.get(ctx, u, location, &payload); err != nil {
		return payload, err
	}
	return payload, nil
}

// FetchForecast returns the raw 5-day/3-hour forecast payload for a location.
func (c *Client) FetchForecast(ctx context.Context, location string) (weather.ForecastPayload, error) {
	var payload weather.ForecastPayload

	u, err := c.buildURL(c.forecastURL, location)
	if err != nil {
		return payload, err
	}
	if err := c.get(ctx, u, location, &payload); err != nil {
		return payload, err
	}
	return payload, nil
}

func (c *Client) buildURL(base, location string) (string, error) {
	if c.apiKey == "" {
		return "", weather.ErrMissingAPIKey
	}

	values := url.Values{}
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	if lat, lon, ok := coordinates(location); ok {
		values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	} else {
		values.Set("q", location)
	}

	return base + "?" + values.Encode(), nil
}

// coordinates reports whether location is a "lat,lon" pair. Anything that
// does not split into exactly two float-parseable parts falls back to a
// place-name query.
func coordinates(location string) (lat, lon float64, ok bool) {
	if !strings.Contains(location, ",") {
		return 0, 0, false
	}
	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}

	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

func (c *Client) get(ctx context.Context, u, location string, out any) error {
	result, err := c.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, &weather.UpstreamError{StatusCode: resp.StatusCode, Location: location}
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("openweather circuit open: %w", err)
		}
		return err
	}

	body, ok := result.([]byte)
	if !ok {
		return fmt.Errorf("unexpected result type from circuit breaker")
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", weather.ErrMalformedPayload, err)
	}
	return nil
}
