package repository

import (
	"context"

	"github.com/deeptec/tenders-api/internal/domain/entity"
)

// ProjectFilter criterios de listado del dashboard. Status vacío = todos.
type ProjectFilter struct {
	Search string
	Status entity.ProjectStatus
	Limit  int
	Offset int
}

// ProjectRepository define el puerto de persistencia para Project (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el proyecto no existe.
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	// GetForUpdate lee el proyecto bloqueándolo hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Project, error)
	Update(ctx context.Context, p *entity.Project) error
	Delete(ctx context.Context, id string) error
	// List devuelve la página pedida (más recientes primero) y el total que cumple el filtro.
	List(ctx context.Context, filter ProjectFilter) ([]*entity.Project, int, error)
}
