package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/deeptec/tenders-api/internal/domain/entity"
	"github.com/deeptec/tenders-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo repositorio de proyectos fuera de transacción. Lee y escribe copias.
type ProjectRepo struct {
	s *Store
}

// NewProjectRepository construye el repositorio sobre el store.
func NewProjectRepository(s *Store) *ProjectRepo {
	return &ProjectRepo{s: s}
}

func (r *ProjectRepo) Create(_ context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[p.ID]; ok {
		return fmt.Errorf("insert project: id duplicado %s", p.ID)
	}
	r.s.projects[p.ID] = p.Clone()
	return nil
}

func (r *ProjectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.projects[id]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

// GetForUpdate fuera de una transacción equivale a GetByID.
func (r *ProjectRepo) GetForUpdate(ctx context.Context, id string) (*entity.Project, error) {
	return r.GetByID(ctx, id)
}

func (r *ProjectRepo) Update(_ context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[p.ID]; !ok {
		return fmt.Errorf("update project %s: fila no encontrada", p.ID)
	}
	r.s.projects[p.ID] = p.Clone()
	return nil
}

func (r *ProjectRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.projects, id)
	return nil
}

// List filtra por texto (sin distinguir mayúsculas) y estado; más recientes primero.
func (r *ProjectRepo) List(_ context.Context, f repository.ProjectFilter) ([]*entity.Project, int, error) {
	fold := cases.Fold()
	needle := fold.String(f.Search)

	r.s.mu.RLock()
	matched := make([]*entity.Project, 0, len(r.s.projects))
	for _, p := range r.s.projects {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if needle != "" && !matchesSearch(fold, p, needle) {
			continue
		}
		matched = append(matched, p.Clone())
	}
	r.s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	if f.Offset < 0 || f.Offset >= total {
		return []*entity.Project{}, total, nil
	}
	end := total
	if f.Limit > 0 && f.Offset+f.Limit < total {
		end = f.Offset + f.Limit
	}
	return matched[f.Offset:end], total, nil
}

func matchesSearch(fold cases.Caser, p *entity.Project, needle string) bool {
	for _, s := range []string{p.TenderName, p.SiteDetails, p.NotePart1, p.NotePart2, p.NotePart3} {
		if strings.Contains(fold.String(s), needle) {
			return true
		}
	}
	return false
}
