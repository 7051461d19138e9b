package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/deeptec/tenders-api/internal/application/dto"
	"github.com/deeptec/tenders-api/internal/domain"
	"github.com/deeptec/tenders-api/internal/domain/entity"
	"github.com/deeptec/tenders-api/internal/domain/permission"
	"github.com/deeptec/tenders-api/internal/domain/repository"
	"github.com/deeptec/tenders-api/pkg/logger"
)

// UserUseCase administración de usuarios: alta (seed), listado y override de permisos.
type UserUseCase struct {
	repo       repository.UserRepository
	log        *logger.Logger
	bcryptCost int
	now        func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log, bcryptCost: bcrypt.DefaultCost, now: time.Now}
}

// WithBcryptCost ajusta el costo de bcrypt (tests usan bcrypt.MinCost).
func (uc *UserUseCase) WithBcryptCost(cost int) *UserUseCase {
	uc.bcryptCost = cost
	return uc
}

// CreateUser da de alta un usuario con la contraseña hasheada.
// Devuelve domain.ErrUsernameTaken si el nombre ya existe.
func (uc *UserUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	errs := &domain.ValidationError{}
	username := strings.TrimSpace(in.Username)
	if l := len(username); l < 3 || l > 30 {
		errs.Add("username", "el usuario debe tener entre 3 y 30 caracteres")
	}
	if len(in.Password) < 6 {
		errs.Add("password", "la contraseña debe tener al menos 6 caracteres")
	}
	role := entity.Role(in.Role)
	if !role.Valid() {
		accepted := make([]string, 0, 4)
		for _, r := range entity.Roles() {
			accepted = append(accepted, string(r))
		}
		errs.AddEnum("role", in.Role, accepted)
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := uc.now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Permissions:  permissionsFromDTO(in.Permissions),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("username", user.Username).Str("role", string(user.Role)).Msg("usuario creado")
	return ToUserResponse(user), nil
}

// ListUsers lista todos los usuarios con sus permisos efectivos.
func (uc *UserUseCase) ListUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{Items: make([]dto.UserResponse, 0, len(users))}
	for _, u := range users {
		out.Items = append(out.Items, *ToUserResponse(u))
	}
	return out, nil
}

// SetPermissions asigna un override explícito; desde ese momento el rol deja de contar para editar.
func (uc *UserUseCase) SetPermissions(ctx context.Context, userID string, in dto.PermissionsDTO) (*dto.UserResponse, error) {
	return uc.updatePermissions(ctx, userID, permissionsFromDTO(&in))
}

// ClearPermissions elimina el override; el usuario vuelve a los permisos de su rol.
func (uc *UserUseCase) ClearPermissions(ctx context.Context, userID string) (*dto.UserResponse, error) {
	return uc.updatePermissions(ctx, userID, nil)
}

func (uc *UserUseCase) updatePermissions(ctx context.Context, userID string, perms *entity.Permissions) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.Permissions = perms
	user.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Bool("override", perms != nil).Msg("permisos actualizados")
	return ToUserResponse(user), nil
}

func permissionsFromDTO(p *dto.PermissionsDTO) *entity.Permissions {
	if p == nil {
		return nil
	}
	return &entity.Permissions{
		CanViewAll:            p.CanViewAll,
		CanEditPart1:          p.CanEditPart1,
		CanEditPart2:          p.CanEditPart2,
		CanEditPart3:          p.CanEditPart3,
		CanEditInvoicePayment: p.CanEditInvoicePayment,
	}
}

func permissionsToDTO(p entity.Permissions) dto.PermissionsDTO {
	return dto.PermissionsDTO{
		CanViewAll:            p.CanViewAll,
		CanEditPart1:          p.CanEditPart1,
		CanEditPart2:          p.CanEditPart2,
		CanEditPart3:          p.CanEditPart3,
		CanEditInvoicePayment: p.CanEditInvoicePayment,
	}
}

// ToUserResponse mapea la entidad a su DTO público (sin hash ni código de recuperación).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	res := &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		Effective: permissionsToDTO(permission.Effective(u)),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Permissions != nil {
		p := permissionsToDTO(*u.Permissions)
		res.Permissions = &p
	}
	return res
}
