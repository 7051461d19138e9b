package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/deeptec/tenders-api/internal/domain/entity"
)

// ProjectStatsResult resultado crudo de las métricas del dashboard.
type ProjectStatsResult struct {
	Total          int
	ByStatus       map[entity.ProjectStatus]int
	AvgCompletion  decimal.Decimal // promedio de CompletionPercentage sobre todos los proyectos
	FullyCompleted int
}

// AnalyticsRepository consultas read-only para el dashboard.
type AnalyticsRepository interface {
	ProjectStats(ctx context.Context) (*ProjectStatsResult, error)
}
