package dto

import "github.com/shopspring/decimal"

// ProjectStatsDTO respuesta de GET /api/projects/stats (tarjetas del dashboard).
type ProjectStatsDTO struct {
	Total         int             `json:"total"`
	Draft         int             `json:"draft"`
	InProgress    int             `json:"in_progress"`
	Completed     int             `json:"completed"`
	Cancelled     int             `json:"cancelled"`
	AvgCompletion decimal.Decimal `json:"avg_completion"` // promedio de completion_percentage, 2 decimales
	AllPartsDone  int             `json:"all_parts_done"`
}
