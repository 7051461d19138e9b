// Package project orquesta el ciclo de vida de un Project:
// permiso → validación/fusión → persistencia atómica → recálculo de estado.
package project

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/deeptec/tenders-api/internal/application/dto"
	"github.com/deeptec/tenders-api/internal/domain"
	"github.com/deeptec/tenders-api/internal/domain/entity"
	"github.com/deeptec/tenders-api/internal/domain/permission"
	"github.com/deeptec/tenders-api/internal/domain/repository"
	"github.com/deeptec/tenders-api/internal/domain/workflow"
	"github.com/deeptec/tenders-api/pkg/logger"
)

// UseCase controlador del ciclo de vida de proyectos.
type UseCase struct {
	tx       TxRunner
	projects repository.ProjectRepository
	users    repository.UserRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner, projects repository.ProjectRepository, users repository.UserRepository, log *logger.Logger) *UseCase {
	return &UseCase{
		tx:       tx,
		projects: projects,
		users:    users,
		log:      log,
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Create crea un proyecto enviando la parte 1. Requiere el permiso de part1.
func (uc *UseCase) Create(ctx context.Context, user *entity.User, in workflow.Fields) (*dto.ProjectResponse, error) {
	if err := permission.Authorize(user, entity.SectionPart1); err != nil {
		return nil, err
	}
	p, err := workflow.Submit(entity.SectionPart1, nil, in, user.ID, uc.now().UTC())
	if err != nil {
		return nil, err
	}
	p.ID = uuid.New().String()
	if err := uc.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("project_id", p.ID).
		Str("user_id", user.ID).
		Msg("proyecto creado")
	return uc.toResponse(ctx, p)
}

// EditSection fusiona los campos de una sección dentro de una transacción
// (lectura con bloqueo → editor → update). El permiso se verifica antes de tocar la DB.
func (uc *UseCase) EditSection(ctx context.Context, user *entity.User, id string, section entity.Section, in workflow.Fields) (*dto.ProjectResponse, error) {
	if err := permission.Authorize(user, section); err != nil {
		return nil, err
	}
	var (
		updated     *entity.Project
		wasComplete bool
	)
	err := uc.tx.RunProject(ctx, func(repo repository.ProjectRepository) error {
		current, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return notFound(id)
		}
		next, err := workflow.Submit(section, current, in, user.ID, uc.now().UTC())
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, next); err != nil {
			return err
		}
		wasComplete = current.Status == entity.StatusCompleted
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("project_id", updated.ID).
		Str("section", string(section)).
		Str("user_id", user.ID).
		Int("completion", workflow.CompletionPercentage(updated)).
		Msg("sección actualizada")
	if !wasComplete && updated.Status == entity.StatusCompleted {
		uc.log.Info().Str("project_id", updated.ID).Msg("proyecto completado")
	}
	return uc.toResponse(ctx, updated)
}

// Get devuelve el proyecto completo. Cualquier usuario autenticado puede verlo.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ProjectResponse, error) {
	p, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound(id)
	}
	return uc.toResponse(ctx, p)
}

// Load devuelve la entidad junto con creador y último editor (para la ficha PDF).
func (uc *UseCase) Load(ctx context.Context, id string) (*entity.Project, map[string]*entity.User, error) {
	p, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, notFound(id)
	}
	users, err := uc.resolveUsers(ctx, []*entity.Project{p})
	if err != nil {
		return nil, nil, err
	}
	return p, users, nil
}

// List lista proyectos paginados, más recientes primero, filtrando por texto y estado.
func (uc *UseCase) List(ctx context.Context, in dto.ProjectListRequest) (*dto.ProjectListResponse, error) {
	in.DefaultPage()
	filter := repository.ProjectFilter{
		Search: norm.NFC.String(strings.TrimSpace(in.Search)),
		Limit:  in.Limit,
		Offset: in.Offset(),
	}
	if s := strings.TrimSpace(in.Status); s != "" {
		status := entity.ProjectStatus(s)
		if !status.Valid() {
			verr := &domain.ValidationError{}
			accepted := make([]string, 0, 4)
			for _, v := range entity.ProjectStatusValues() {
				accepted = append(accepted, string(v))
			}
			verr.AddEnum("status", s, accepted)
			return nil, verr
		}
		filter.Status = status
	}

	list, total, err := uc.projects.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	users, err := uc.resolveUsers(ctx, list)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProjectResponse(p, users))
	}
	return &dto.ProjectListResponse{
		Projects: items,
		Pagination: dto.PageResponse{
			Current: in.Page,
			Pages:   int(math.Ceil(float64(total) / float64(in.Limit))),
			Total:   total,
			Limit:   in.Limit,
		},
	}, nil
}

// Delete elimina el proyecto. Solo su creador puede hacerlo; ningún rol lo sobrescribe.
func (uc *UseCase) Delete(ctx context.Context, user *entity.User, id string) error {
	err := uc.tx.RunProject(ctx, func(repo repository.ProjectRepository) error {
		current, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return notFound(id)
		}
		if user == nil || current.CreatedBy != user.ID {
			return &domain.AuthorizationDeniedError{
				Section: "project",
				Reason:  "acceso denegado: solo puede eliminar sus propios proyectos",
			}
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("project_id", id).Str("user_id", user.ID).Msg("proyecto eliminado")
	return nil
}

func notFound(id string) error {
	return fmt.Errorf("proyecto %s: %w", id, domain.ErrNotFound)
}

// resolveUsers carga en un solo viaje los creadores / últimos editores de los proyectos.
func (uc *UseCase) resolveUsers(ctx context.Context, list []*entity.Project) (map[string]*entity.User, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0, len(list)*2)
	for _, p := range list {
		for _, id := range []string{p.CreatedBy, p.LastModifiedBy} {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	out := make(map[string]*entity.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	users, err := uc.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolver usuarios: %w", err)
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// toResponse la escritura ya está confirmada: si falla la resolución de usuarios
// se responde igual, solo con los IDs.
func (uc *UseCase) toResponse(ctx context.Context, p *entity.Project) (*dto.ProjectResponse, error) {
	users, err := uc.resolveUsers(ctx, []*entity.Project{p})
	if err != nil {
		uc.log.Warn().Err(err).Str("project_id", p.ID).Msg("no se pudieron resolver los usuarios del proyecto")
		users = map[string]*entity.User{}
	}
	return toProjectResponse(p, users), nil
}

func toUserSummary(id string, users map[string]*entity.User) *dto.UserSummary {
	if id == "" {
		return nil
	}
	u, ok := users[id]
	if !ok {
		return &dto.UserSummary{ID: id}
	}
	return &dto.UserSummary{ID: u.ID, Username: u.Username, Role: string(u.Role)}
}

func toProjectResponse(p *entity.Project, users map[string]*entity.User) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:                   p.ID,
		TenderName:           p.TenderName,
		PerformanceBond:      string(p.PerformanceBond),
		AgreementSigned:      string(p.AgreementSigned),
		SiteDetails:          p.SiteDetails,
		CreateInExternal:     string(p.CreateInExternal),
		NotePart1:            p.NotePart1,
		StoreManagerCheck:    string(p.StoreManagerCheck),
		Ready:                p.Ready,
		PurchasingNote:       p.PurchasingNote,
		NotePart2:            p.NotePart2,
		SelectTeam:           string(p.Team),
		StructurePanel:       p.StructurePanel,
		Timeline:             p.Timeline,
		InstallationNote:     p.InstallationNote,
		NotePart3:            p.NotePart3,
		InvoiceCreated:       string(p.InvoiceCreated),
		PaymentStatus:        string(p.Payment),
		CreatedBy:            toUserSummary(p.CreatedBy, users),
		LastModifiedBy:       toUserSummary(p.LastModifiedBy, users),
		Status:               string(p.Status),
		Part1Completed:       p.Part1Completed,
		Part2Completed:       p.Part2Completed,
		Part3Completed:       p.Part3Completed,
		Part1CompletedAt:     p.Part1CompletedAt,
		Part2CompletedAt:     p.Part2CompletedAt,
		Part3CompletedAt:     p.Part3CompletedAt,
		CompletionPercentage: workflow.CompletionPercentage(p),
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

// FieldsFromSection convierte el request HTTP de una sección en workflow.Fields.
func FieldsFromSection(in dto.SectionRequest) workflow.Fields {
	return workflow.Fields{
		TenderName:        in.TenderName,
		PerformanceBond:   in.PerformanceBond,
		AgreementSigned:   in.AgreementSigned,
		SiteDetails:       in.SiteDetails,
		CreateInExternal:  in.CreateInExternal,
		NotePart1:         in.NotePart1,
		StoreManagerCheck: in.StoreManagerCheck,
		Ready:             in.Ready,
		PurchasingNote:    in.PurchasingNote,
		NotePart2:         in.NotePart2,
		SelectTeam:        in.SelectTeam,
		StructurePanel:    in.StructurePanel,
		Timeline:          in.Timeline,
		InstallationNote:  in.InstallationNote,
		NotePart3:         in.NotePart3,
		InvoiceCreated:    in.InvoiceCreated,
		PaymentStatus:     in.PaymentStatus,
	}
}
