package auth_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/deeptec/tenders-api/internal/application/auth"
	"github.com/deeptec/tenders-api/internal/application/dto"
	"github.com/deeptec/tenders-api/internal/application/usecase"
	"github.com/deeptec/tenders-api/internal/domain"
	"github.com/deeptec/tenders-api/internal/infrastructure/memory"
	"github.com/deeptec/tenders-api/pkg/jwt"
	"github.com/deeptec/tenders-api/pkg/logger"
)

const secret = "test-secret"

type env struct {
	auth  *auth.AuthUseCase
	users *memory.UserRepo
	now   time.Time
	id    string
}

func newEnv(t *testing.T, echo bool) *env {
	t.Helper()
	store := memory.NewStore()
	e := &env{users: memory.NewUserRepository(store), now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}

	created, err := usecase.NewUserUseCase(e.users, logger.Nop()).
		WithBcryptCost(bcrypt.MinCost).
		CreateUser(context.Background(), dto.CreateUserRequest{Username: "finance", Password: "secret1", Role: "finance_team"})
	require.NoError(t, err)
	e.id = created.ID

	e.auth = auth.NewAuthUseCase(e.users, auth.Config{
		JWT:           auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "tenders-api"},
		ResetCodeTTL:  time.Hour,
		EchoResetCode: echo,
		BcryptCost:    bcrypt.MinCost,
	}, logger.Nop()).WithClock(func() time.Time { return e.now })
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / Me
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_OK(t *testing.T) {
	e := newEnv(t, false)
	res, err := e.auth.Login(context.Background(), dto.LoginRequest{Username: " Finance ", Password: "secret1"})
	require.NoError(t, err)

	userID, role, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, e.id, userID)
	assert.Equal(t, "finance_team", role)
	assert.Equal(t, "finance", res.User.Username)
	assert.Nil(t, res.User.Permissions)
	assert.True(t, res.User.Effective.CanEditPart2)
	assert.False(t, res.User.Effective.CanEditPart1)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	e := newEnv(t, false)
	_, err := e.auth.Login(context.Background(), dto.LoginRequest{Username: "finance", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = e.auth.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "no revela si el usuario existe")
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	e := newEnv(t, false)
	u, _ := e.users.GetByID(context.Background(), e.id)
	u.IsActive = false
	require.NoError(t, e.users.Update(context.Background(), u))

	_, err := e.auth.Login(context.Background(), dto.LoginRequest{Username: "finance", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "mismo error que credenciales inválidas")
	assert.NotErrorIs(t, err, domain.ErrForbidden)
}

func TestMeYRefresh(t *testing.T) {
	e := newEnv(t, false)
	me, err := e.auth.Me(context.Background(), e.id)
	require.NoError(t, err)
	assert.Equal(t, "finance_team", me.Role)

	_, err = e.auth.Me(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	u, _ := e.users.GetByID(context.Background(), e.id)
	tok, err := e.auth.Refresh(context.Background(), u)
	require.NoError(t, err)
	userID, _, err := jwt.Parse(secret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, e.id, userID)
}

func TestRegister_Cerrado(t *testing.T) {
	e := newEnv(t, false)
	assert.ErrorIs(t, e.auth.Register(), domain.ErrRegistrationClosed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Contraseñas
// ──────────────────────────────────────────────────────────────────────────────

func TestChangePassword(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()

	err := e.auth.ChangePassword(ctx, e.id, dto.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = e.auth.ChangePassword(ctx, e.id, dto.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "secret2"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, e.auth.ChangePassword(ctx, e.id, dto.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"}))
	_, err = e.auth.Login(ctx, dto.LoginRequest{Username: "finance", Password: "secret2"})
	assert.NoError(t, err)
}

func TestForgotYResetPassword(t *testing.T) {
	e := newEnv(t, true)
	ctx := context.Background()

	res, err := e.auth.ForgotPassword(ctx, dto.ForgotPasswordRequest{Username: "finance"})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), res.ResetCode)

	stored, _ := e.users.GetByID(ctx, e.id)
	assert.NotEqual(t, res.ResetCode, stored.ResetCodeHash, "solo se guarda el hash")

	err = e.auth.ResetPassword(ctx, dto.ResetPasswordRequest{Username: "finance", ResetCode: "xxxxxx", NewPassword: "secret9"})
	assert.ErrorIs(t, err, domain.ErrInvalidResetCode)

	require.NoError(t, e.auth.ResetPassword(ctx, dto.ResetPasswordRequest{Username: "finance", ResetCode: res.ResetCode, NewPassword: "secret9"}))
	_, err = e.auth.Login(ctx, dto.LoginRequest{Username: "finance", Password: "secret9"})
	assert.NoError(t, err)

	err = e.auth.ResetPassword(ctx, dto.ResetPasswordRequest{Username: "finance", ResetCode: res.ResetCode, NewPassword: "secret8"})
	assert.ErrorIs(t, err, domain.ErrInvalidResetCode, "el código es de un solo uso")
}

func TestResetPassword_CodigoExpirado(t *testing.T) {
	e := newEnv(t, true)
	ctx := context.Background()
	res, err := e.auth.ForgotPassword(ctx, dto.ForgotPasswordRequest{Username: "finance"})
	require.NoError(t, err)

	e.now = e.now.Add(time.Hour)
	err = e.auth.ResetPassword(ctx, dto.ResetPasswordRequest{Username: "finance", ResetCode: res.ResetCode, NewPassword: "secret9"})
	assert.ErrorIs(t, err, domain.ErrInvalidResetCode)
}

func TestResetPassword_UsuarioInactivo(t *testing.T) {
	e := newEnv(t, true)
	ctx := context.Background()
	res, err := e.auth.ForgotPassword(ctx, dto.ForgotPasswordRequest{Username: "finance"})
	require.NoError(t, err)
	require.NotEmpty(t, res.ResetCode)

	u, _ := e.users.GetByID(ctx, e.id)
	u.IsActive = false
	require.NoError(t, e.users.Update(ctx, u))

	err = e.auth.ResetPassword(ctx, dto.ResetPasswordRequest{Username: "finance", ResetCode: res.ResetCode, NewPassword: "secret9"})
	assert.ErrorIs(t, err, domain.ErrInvalidResetCode)

	stored, _ := e.users.GetByID(ctx, e.id)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")), "la contraseña no cambia")
}

func TestForgotPassword_SinEcoYUsuarioInexistente(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()

	res, err := e.auth.ForgotPassword(ctx, dto.ForgotPasswordRequest{Username: "finance"})
	require.NoError(t, err)
	assert.Empty(t, res.ResetCode, "fuera de development el código no se devuelve")

	ghost, err := e.auth.ForgotPassword(ctx, dto.ForgotPasswordRequest{Username: "ghost"})
	require.NoError(t, err)
	assert.Equal(t, res.Message, ghost.Message)
}
