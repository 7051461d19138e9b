package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deeptec/tenders-api/internal/domain"
	"github.com/deeptec/tenders-api/internal/domain/entity"
	"github.com/deeptec/tenders-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Las columnas perm_* son NULL cuando el usuario no tiene override y se usan los permisos del rol.
const userColumns = `
	id, username, password_hash, role, is_active,
	perm_can_view_all, perm_can_edit_part1, perm_can_edit_part2, perm_can_edit_part3, perm_can_edit_invoice_payment,
	COALESCE(reset_code_hash, ''), reset_code_expires_at, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u                                        entity.User
		viewAll, part1, part2, part3, invoicePay *bool
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.IsActive,
		&viewAll, &part1, &part2, &part3, &invoicePay,
		&u.ResetCodeHash, &u.ResetCodeExpiresAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if part1 != nil {
		u.Permissions = &entity.Permissions{
			CanViewAll:            deref(viewAll),
			CanEditPart1:          deref(part1),
			CanEditPart2:          deref(part2),
			CanEditPart3:          deref(part3),
			CanEditInvoicePayment: deref(invoicePay),
		}
	}
	return &u, nil
}

func deref(b *bool) bool { return b != nil && *b }

// permissionArgs columnas perm_* a escribir; todas NULL si no hay override.
func permissionArgs(p *entity.Permissions) []any {
	if p == nil {
		return []any{nil, nil, nil, nil, nil}
	}
	return []any{p.CanViewAll, p.CanEditPart1, p.CanEditPart2, p.CanEditPart3, p.CanEditInvoicePayment}
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, role, is_active,
			perm_can_view_all, perm_can_edit_part1, perm_can_edit_part2, perm_can_edit_part3, perm_can_edit_invoice_payment,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	args := []any{user.ID, user.Username, user.PasswordHash, user.Role, user.IsActive}
	args = append(args, permissionArgs(user.Permissions)...)
	args = append(args, user.CreatedAt, user.UpdatedAt)
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !isUUID(id) {
		return nil, nil
	}
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByUsername obtiene un usuario por nombre de usuario (sin distinguir mayúsculas).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(username) = lower($1) LIMIT 1`,
		strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// ListByIDs resuelve varios usuarios en una sola consulta. Los IDs inexistentes se omiten.
func (r *UserRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if isUUID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return nil, nil
	}
	return r.query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1::UUID[])`, valid)
}

// List lista todos los usuarios por nombre.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	return r.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
}

func (r *UserRepo) query(ctx context.Context, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update actualiza contraseña, rol, estado, override de permisos y código de recuperación.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET password_hash = $2, role = $3, is_active = $4,
			perm_can_view_all = $5, perm_can_edit_part1 = $6, perm_can_edit_part2 = $7,
			perm_can_edit_part3 = $8, perm_can_edit_invoice_payment = $9,
			reset_code_hash = $10, reset_code_expires_at = $11, updated_at = $12
		WHERE id = $1`
	args := []any{user.ID, user.PasswordHash, user.Role, user.IsActive}
	args = append(args, permissionArgs(user.Permissions)...)
	args = append(args, nullIfEmpty(user.ResetCodeHash), user.ResetCodeExpiresAt, user.UpdatedAt)
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
