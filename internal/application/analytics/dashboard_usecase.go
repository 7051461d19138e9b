// Package analytics contiene los casos de uso de métricas del dashboard de proyectos.
package analytics

import (
	"context"
	"fmt"

	"github.com/deeptec/tenders-api/internal/application/dto"
	"github.com/deeptec/tenders-api/internal/domain/entity"
	"github.com/deeptec/tenders-api/internal/domain/repository"
)

// DashboardUseCase resumen de proyectos por estado y completitud.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetProjectStats construye las tarjetas del dashboard.
func (uc *DashboardUseCase) GetProjectStats(ctx context.Context) (*dto.ProjectStatsDTO, error) {
	res, err := uc.analyticsRepo.ProjectStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: estadísticas de proyectos: %w", err)
	}
	return &dto.ProjectStatsDTO{
		Total:         res.Total,
		Draft:         res.ByStatus[entity.StatusDraft],
		InProgress:    res.ByStatus[entity.StatusInProgress],
		Completed:     res.ByStatus[entity.StatusCompleted],
		Cancelled:     res.ByStatus[entity.StatusCancelled],
		AvgCompletion: res.AvgCompletion.Round(2),
		AllPartsDone:  res.FullyCompleted,
	}, nil
}
