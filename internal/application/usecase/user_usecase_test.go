package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/deeptec/tenders-api/internal/application/dto"
	"github.com/deeptec/tenders-api/internal/application/usecase"
	"github.com/deeptec/tenders-api/internal/domain"
	"github.com/deeptec/tenders-api/internal/infrastructure/memory"
	"github.com/deeptec/tenders-api/pkg/logger"
)

func newUserUseCase() *usecase.UserUseCase {
	return usecase.NewUserUseCase(memory.NewUserRepository(memory.NewStore()), logger.Nop()).
		WithBcryptCost(bcrypt.MinCost)
}

func TestCreateUser_Validaciones(t *testing.T) {
	uc := newUserUseCase()
	_, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{Username: "ab", Password: "1", Role: "boss"})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("username"))
	assert.True(t, verr.Has("password"))
	assert.True(t, verr.Has("role"))
}

func TestCreateUser_Duplicado(t *testing.T) {
	uc := newUserUseCase()
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{Username: "admin", Password: "secret1", Role: "admin"})
	require.NoError(t, err)

	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Username: "Admin", Password: "secret1", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestSetYClearPermissions(t *testing.T) {
	uc := newUserUseCase()
	ctx := context.Background()
	u, err := uc.CreateUser(ctx, dto.CreateUserRequest{Username: "admin", Password: "secret1", Role: "admin"})
	require.NoError(t, err)
	assert.True(t, u.Effective.CanEditPart1)

	res, err := uc.SetPermissions(ctx, u.ID, dto.PermissionsDTO{CanViewAll: true, CanEditPart2: true})
	require.NoError(t, err)
	require.NotNil(t, res.Permissions)
	assert.False(t, res.Effective.CanEditPart1, "el override restrictivo manda sobre el rol admin")
	assert.True(t, res.Effective.CanEditPart2)

	list, err := uc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.NotNil(t, list.Items[0].Permissions)

	res, err = uc.ClearPermissions(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, res.Permissions)
	assert.True(t, res.Effective.CanEditPart1)

	_, err = uc.SetPermissions(ctx, "ghost", dto.PermissionsDTO{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
