package weather

import (
	"context"
	"strings"
)

// Provider abstracts the upstream weather data source.
type Provider interface {
	FetchCurrent(ctx context.Context, location string) (CurrentPayload, error)
	FetchForecast(ctx context.Context, location string) (ForecastPayload, error)
}

// Service orchestrates the provider client and the formatting/aggregation
// steps into the two weather operations the API exposes.
type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Current fetches and formats the current conditions for a location.
func (s *Service) Current(ctx context.Context, location string) (Snapshot, error) {
	raw, err := s.provider.FetchCurrent(ctx, strings.TrimSpace(location))
	if err != nil {
		return Snapshot{}, err
	}
	return FormatCurrent(raw)
}

// Forecast fetches the provider feed and collapses it into the canonical
// 7-day summary for a location.
func (s *Service) Forecast(ctx context.Context, location string) (WeeklyForecast, error) {
	raw, err := s.provider.FetchForecast(ctx, strings.TrimSpace(location))
	if err != nil {
		return WeeklyForecast{}, err
	}
	return AggregateForecast(raw)
}
