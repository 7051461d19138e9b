package memory

import (
	"context"
	"fmt"

	"github.com/deeptec/tenders-api/internal/application/project"
	"github.com/deeptec/tenders-api/internal/domain/entity"
	"github.com/deeptec/tenders-api/internal/domain/repository"
)

var _ project.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones en memoria: las escrituras se acumulan en un overlay
// y solo se aplican al store si fn termina sin error.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunProject ejecuta fn con un repositorio transaccional. Las transacciones se serializan.
func (t *TxRunner) RunProject(ctx context.Context, fn func(repo repository.ProjectRepository) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	tx := &txProjectRepo{
		base:    NewProjectRepository(t.s),
		pending: make(map[string]*entity.Project),
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for id, p := range tx.pending {
		if p == nil {
			delete(t.s.projects, id)
			continue
		}
		t.s.projects[id] = p
	}
	return nil
}

// txProjectRepo vista transaccional: lee primero del overlay. Una entrada nil marca un borrado.
type txProjectRepo struct {
	base    *ProjectRepo
	pending map[string]*entity.Project
}

func (r *txProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	if cur, _ := r.GetByID(ctx, p.ID); cur != nil {
		return fmt.Errorf("insert project: id duplicado %s", p.ID)
	}
	r.pending[p.ID] = p.Clone()
	return nil
}

func (r *txProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	if p, ok := r.pending[id]; ok {
		if p == nil {
			return nil, nil
		}
		return p.Clone(), nil
	}
	return r.base.GetByID(ctx, id)
}

func (r *txProjectRepo) GetForUpdate(ctx context.Context, id string) (*entity.Project, error) {
	return r.GetByID(ctx, id)
}

func (r *txProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	cur, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if cur == nil {
		return fmt.Errorf("update project %s: fila no encontrada", p.ID)
	}
	r.pending[p.ID] = p.Clone()
	return nil
}

func (r *txProjectRepo) Delete(_ context.Context, id string) error {
	r.pending[id] = nil
	return nil
}

// List dentro de la transacción no ve el overlay; ningún caso de uso lista dentro de una tx.
func (r *txProjectRepo) List(ctx context.Context, f repository.ProjectFilter) ([]*entity.Project, int, error) {
	return r.base.List(ctx, f)
}
