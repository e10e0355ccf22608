package domain

import (
	"context"
)

type HubStats struct {
	ActiveMatches   int64
	StartedMatches  int64
	FinishedMatches int64
}

type HubUseCase interface {
	Handle(ctx context.Context, client Client) error
	Stats() HubStats
}

type HealthCheckResponse struct {
	Status          string
	ActiveMatches   int64
	StartedMatches  int64
	FinishedMatches int64
}
