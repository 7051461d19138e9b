package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/deeptec/tenders-api/internal/domain/entity"
	"github.com/deeptec/tenders-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de proyectos.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// ProjectStats cuenta proyectos por estado y promedia el porcentaje de completitud.
// El porcentaje por proyecto usa la misma regla que el dominio: ROUND(partes * 100 / 3).
func (r *AnalyticsRepo) ProjectStats(ctx context.Context) (*repository.ProjectStatsResult, error) {
	const byStatus = `SELECT status, COUNT(*) FROM projects GROUP BY status`
	rows, err := r.pool.Query(ctx, byStatus)
	if err != nil {
		return nil, fmt.Errorf("analytics.ProjectStats: %w", err)
	}
	defer rows.Close()

	res := &repository.ProjectStatsResult{ByStatus: make(map[entity.ProjectStatus]int)}
	for rows.Next() {
		var (
			status entity.ProjectStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("analytics.ProjectStats scan: %w", err)
		}
		res.ByStatus[status] = n
		res.Total += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.ProjectStats: %w", err)
	}

	const completion = `
	SELECT
	    COALESCE(AVG(ROUND((part1_completed::INT + part2_completed::INT + part3_completed::INT) * 100.0 / 3)), 0)::NUMERIC(5,2),
	    COUNT(*) FILTER (WHERE part1_completed AND part2_completed AND part3_completed)
	FROM projects`
	var avg decimal.Decimal
	if err := r.pool.QueryRow(ctx, completion).Scan(&avg, &res.FullyCompleted); err != nil {
		return nil, fmt.Errorf("analytics.ProjectStats completion: %w", err)
	}
	res.AvgCompletion = avg
	return res, nil
}
