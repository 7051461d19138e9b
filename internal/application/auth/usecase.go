package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/deeptec/tenders-api/internal/application/dto"
	"github.com/deeptec/tenders-api/internal/application/usecase"
	"github.com/deeptec/tenders-api/internal/domain"
	"github.com/deeptec/tenders-api/internal/domain/entity"
	"github.com/deeptec/tenders-api/internal/domain/repository"
	"github.com/deeptec/tenders-api/pkg/jwt"
	"github.com/deeptec/tenders-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Config parámetros del caso de uso de auth.
type Config struct {
	JWT          JWTConfig
	ResetCodeTTL time.Duration
	// EchoResetCode devuelve el código de recuperación en la respuesta (solo development;
	// en otros entornos el código se entregaría por un canal externo).
	EchoResetCode bool
	BcryptCost    int
}

const (
	minPasswordLen = 6
	resetCodeLen   = 6
	forgotMessage  = "si el usuario existe, se generó un código de recuperación"
)

// AuthUseCase casos de uso de autenticación: login, perfil, contraseña y recuperación.
// No hay registro público: los usuarios se crean por seed o por un admin.
type AuthUseCase struct {
	userRepo repository.UserRepository
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, cfg Config, log *logger.Logger) *AuthUseCase {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.ResetCodeTTL == 0 {
		cfg.ResetCodeTTL = time.Hour
	}
	return &AuthUseCase{userRepo: userRepo, cfg: cfg, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *AuthUseCase) WithClock(now func() time.Time) *AuthUseCase {
	uc.now = now
	return uc
}

// Register el registro público está cerrado.
func (uc *AuthUseCase) Register() error {
	return domain.ErrRegistrationClosed
}

// Login verifica usuario/contraseña, genera JWT y retorna token + usuario.
// Usuario inexistente, inactivo o contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := uc.token(user)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("login")
	return &dto.LoginResponse{Token: token, User: *usecase.ToUserResponse(user)}, nil
}

// Me devuelve el perfil del usuario autenticado con sus permisos efectivos.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return usecase.ToUserResponse(user), nil
}

// Refresh emite un token nuevo para un usuario ya autenticado.
func (uc *AuthUseCase) Refresh(_ context.Context, user *entity.User) (*dto.TokenResponse, error) {
	token, err := uc.token(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token}, nil
}

// ChangePassword cambia la contraseña verificando la actual.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	if err := validateNewPassword(in.NewPassword); err != nil {
		return err
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	if err := uc.setPassword(user, in.NewPassword); err != nil {
		return err
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("contraseña cambiada")
	return nil
}

// ForgotPassword genera un código de 6 dígitos con vencimiento y guarda solo su hash.
// La respuesta es la misma exista o no el usuario.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error) {
	res := &dto.ForgotPasswordResponse{Message: forgotMessage}
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return res, nil
	}

	code, err := generateResetCode()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), uc.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash reset code: %w", err)
	}
	now := uc.now().UTC()
	expires := now.Add(uc.cfg.ResetCodeTTL)
	user.ResetCodeHash = string(hash)
	user.ResetCodeExpiresAt = &expires
	user.UpdatedAt = now
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Time("expires_at", expires).Msg("código de recuperación generado")
	if uc.cfg.EchoResetCode {
		res.ResetCode = code
	}
	return res, nil
}

// ResetPassword restablece la contraseña con un código vigente. El código es de un solo uso.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	if err := validateNewPassword(in.NewPassword); err != nil {
		return err
	}
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive || user.ResetCodeHash == "" || user.ResetCodeExpiresAt == nil {
		return domain.ErrInvalidResetCode
	}
	if !uc.now().Before(*user.ResetCodeExpiresAt) {
		return domain.ErrInvalidResetCode
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.ResetCodeHash), []byte(strings.TrimSpace(in.ResetCode))); err != nil {
		return domain.ErrInvalidResetCode
	}
	if err := uc.setPassword(user, in.NewPassword); err != nil {
		return err
	}
	user.ResetCodeHash = ""
	user.ResetCodeExpiresAt = nil
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("contraseña restablecida")
	return nil
}

func (uc *AuthUseCase) token(user *entity.User) (string, error) {
	return jwt.Generate(uc.cfg.JWT.Secret, user.ID, string(user.Role), uc.cfg.JWT.Issuer, uc.cfg.JWT.ExpMinutes)
}

func (uc *AuthUseCase) setPassword(user *entity.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = uc.now().UTC()
	return nil
}

func validateNewPassword(p string) error {
	if len(p) < minPasswordLen {
		errs := &domain.ValidationError{}
		errs.Add("new_password", fmt.Sprintf("la contraseña debe tener al menos %d caracteres", minPasswordLen))
		return errs
	}
	return nil
}

// generateResetCode código numérico uniforme de resetCodeLen dígitos (con ceros a la izquierda).
func generateResetCode() (string, error) {
	upper := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, upper)
	if err != nil {
		return "", fmt.Errorf("generar código: %w", err)
	}
	return fmt.Sprintf("%0*d", resetCodeLen, n.Int64()), nil
}
