package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deeptec/tenders-api/internal/application/analytics"
	"github.com/deeptec/tenders-api/internal/domain/entity"
	"github.com/deeptec/tenders-api/internal/domain/repository"
	"github.com/deeptec/tenders-api/internal/infrastructure/memory"
)

func TestGetProjectStats(t *testing.T) {
	store := memory.NewStore()
	projects := memory.NewProjectRepository(store)
	ctx := context.Background()
	require.NoError(t, projects.Create(ctx, &entity.Project{ID: "a", Status: entity.StatusInProgress, Part1Completed: true}))
	require.NoError(t, projects.Create(ctx, &entity.Project{ID: "b", Status: entity.StatusInProgress, Part1Completed: true, Part2Completed: true}))
	require.NoError(t, projects.Create(ctx, &entity.Project{ID: "c", Status: entity.StatusCompleted,
		Part1Completed: true, Part2Completed: true, Part3Completed: true}))

	stats, err := analytics.NewDashboardUseCase(memory.NewAnalyticsRepository(store)).GetProjectStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.InProgress)
	assert.Equal(t, 1, stats.Completed)
	assert.Zero(t, stats.Draft)
	assert.Equal(t, 1, stats.AllPartsDone)
	// (33 + 67 + 100) / 3
	assert.True(t, decimal.RequireFromString("66.67").Equal(stats.AvgCompletion), stats.AvgCompletion.String())
}

type failingAnalytics struct{}

func (failingAnalytics) ProjectStats(context.Context) (*repository.ProjectStatsResult, error) {
	return nil, errors.New("db caída")
}

func TestGetProjectStats_Error(t *testing.T) {
	_, err := analytics.NewDashboardUseCase(failingAnalytics{}).GetProjectStats(context.Background())
	assert.Error(t, err)
}
