package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/deeptec/tenders-api/internal/domain/entity"
	"github.com/deeptec/tenders-api/internal/domain/repository"
	"github.com/deeptec/tenders-api/internal/domain/workflow"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo métricas del dashboard calculadas sobre el store.
type AnalyticsRepo struct {
	s *Store
}

// NewAnalyticsRepository construye el repositorio sobre el store.
func NewAnalyticsRepository(s *Store) *AnalyticsRepo {
	return &AnalyticsRepo{s: s}
}

func (r *AnalyticsRepo) ProjectStats(_ context.Context) (*repository.ProjectStatsResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res := &repository.ProjectStatsResult{
		ByStatus:      make(map[entity.ProjectStatus]int),
		AvgCompletion: decimal.Zero,
	}
	sum := decimal.Zero
	for _, p := range r.s.projects {
		res.Total++
		res.ByStatus[p.Status]++
		if p.AllPartsCompleted() {
			res.FullyCompleted++
		}
		sum = sum.Add(decimal.NewFromInt(int64(workflow.CompletionPercentage(p))))
	}
	if res.Total > 0 {
		res.AvgCompletion = sum.DivRound(decimal.NewFromInt(int64(res.Total)), 2)
	}
	return res, nil
}
