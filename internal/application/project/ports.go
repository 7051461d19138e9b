package project

import (
	"context"

	"github.com/deeptec/tenders-api/internal/domain/entity"
	"github.com/deeptec/tenders-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con un repositorio atado a ella.
// Si fn devuelve error se hace Rollback; nada se considera escrito hasta el Commit.
type TxRunner interface {
	RunProject(ctx context.Context, fn func(repo repository.ProjectRepository) error) error
}

// SheetGenerator genera la ficha PDF de un proyecto.
type SheetGenerator interface {
	GenerateProjectSheet(ctx context.Context, p *entity.Project, createdBy, lastModifiedBy *entity.User) ([]byte, error)
}
