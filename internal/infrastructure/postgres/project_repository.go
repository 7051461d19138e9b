package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/deeptec/tenders-api/internal/domain/entity"
	"github.com/deeptec/tenders-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación de ProjectRepository sobre PostgreSQL (usable con pool o tx).
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador de proyectos. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `
	id, tender_name, performance_bond, agreement_signed, site_details, create_in_external, note_part1,
	store_manager_check, ready, purchasing_note, note_part2,
	select_team, structure_panel, timeline, installation_note, note_part3,
	invoice_created, payment_status,
	created_by, COALESCE(last_modified_by::TEXT, ''), status,
	part1_completed, part2_completed, part3_completed,
	part1_completed_at, part2_completed_at, part3_completed_at,
	created_at, updated_at`

func scanProject(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	err := row.Scan(
		&p.ID, &p.TenderName, &p.PerformanceBond, &p.AgreementSigned, &p.SiteDetails, &p.CreateInExternal, &p.NotePart1,
		&p.StoreManagerCheck, &p.Ready, &p.PurchasingNote, &p.NotePart2,
		&p.Team, &p.StructurePanel, &p.Timeline, &p.InstallationNote, &p.NotePart3,
		&p.InvoiceCreated, &p.Payment,
		&p.CreatedBy, &p.LastModifiedBy, &p.Status,
		&p.Part1Completed, &p.Part2Completed, &p.Part3Completed,
		&p.Part1CompletedAt, &p.Part2CompletedAt, &p.Part3CompletedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un proyecto nuevo.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO projects (
			id, tender_name, performance_bond, agreement_signed, site_details, create_in_external, note_part1,
			store_manager_check, ready, purchasing_note, note_part2,
			select_team, structure_panel, timeline, installation_note, note_part3,
			invoice_created, payment_status,
			created_by, last_modified_by, status,
			part1_completed, part2_completed, part3_completed,
			part1_completed_at, part2_completed_at, part3_completed_at,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,NULLIF($20,'')::UUID,$21,$22,$23,$24,$25,$26,$27,$28,$29)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.TenderName, p.PerformanceBond, p.AgreementSigned, p.SiteDetails, p.CreateInExternal, p.NotePart1,
		p.StoreManagerCheck, p.Ready, p.PurchasingNote, p.NotePart2,
		p.Team, p.StructurePanel, p.Timeline, p.InstallationNote, p.NotePart3,
		p.InvoiceCreated, p.Payment,
		p.CreatedBy, p.LastModifiedBy, p.Status,
		p.Part1Completed, p.Part2Completed, p.Part3Completed,
		p.Part1CompletedAt, p.Part2CompletedAt, p.Part3CompletedAt,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto por ID; (nil, nil) si no existe.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	return r.get(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
}

// GetForUpdate obtiene el proyecto y bloquea la fila hasta el fin de la tx (SELECT FOR UPDATE).
func (r *ProjectRepo) GetForUpdate(ctx context.Context, id string) (*entity.Project, error) {
	return r.get(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProjectRepo) get(ctx context.Context, query, id string) (*entity.Project, error) {
	if !isUUID(id) {
		return nil, nil
	}
	p, err := scanProject(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// Update reescribe todos los campos editables del proyecto. created_by y created_at no cambian.
func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	query := `
		UPDATE projects SET
			tender_name = $2, performance_bond = $3, agreement_signed = $4, site_details = $5,
			create_in_external = $6, note_part1 = $7,
			store_manager_check = $8, ready = $9, purchasing_note = $10, note_part2 = $11,
			select_team = $12, structure_panel = $13, timeline = $14, installation_note = $15, note_part3 = $16,
			invoice_created = $17, payment_status = $18,
			last_modified_by = NULLIF($19,'')::UUID, status = $20,
			part1_completed = $21, part2_completed = $22, part3_completed = $23,
			part1_completed_at = $24, part2_completed_at = $25, part3_completed_at = $26,
			updated_at = $27
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.TenderName, p.PerformanceBond, p.AgreementSigned, p.SiteDetails,
		p.CreateInExternal, p.NotePart1,
		p.StoreManagerCheck, p.Ready, p.PurchasingNote, p.NotePart2,
		p.Team, p.StructurePanel, p.Timeline, p.InstallationNote, p.NotePart3,
		p.InvoiceCreated, p.Payment,
		p.LastModifiedBy, p.Status,
		p.Part1Completed, p.Part2Completed, p.Part3Completed,
		p.Part1CompletedAt, p.Part2CompletedAt, p.Part3CompletedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update project %s: fila no encontrada", p.ID)
	}
	return nil
}

// Delete elimina el proyecto.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// List busca por nombre de licitación, detalles de sitio o notas (ILIKE) y filtra por estado.
// Orden: más recientes primero.
func (r *ProjectRepo) List(ctx context.Context, f repository.ProjectFilter) ([]*entity.Project, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(tender_name ILIKE $%d OR site_details ILIKE $%d OR note_part1 ILIKE $%d OR note_part2 ILIKE $%d OR note_part3 ILIKE $%d)",
			n, n, n, n, n))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM projects`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}
	if f.Offset < 0 || f.Offset >= total {
		return []*entity.Project{}, total, nil
	}

	args = append(args, f.Limit, f.Offset)
	query := `SELECT ` + projectColumns + ` FROM projects` + cond +
		fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Project, 0, f.Limit)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	return list, total, nil
}
