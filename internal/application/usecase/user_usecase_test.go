package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/attendance-api/internal/application/dto"
	"github.com/jhoicas/attendance-api/internal/application/usecase"
	"github.com/jhoicas/attendance-api/internal/domain"
	"github.com/jhoicas/attendance-api/internal/domain/entity"
	"github.com/jhoicas/attendance-api/internal/infrastructure/memory"
)

func strPtr(s string) *string { return &s }

func createReq(email, code, role string, supervisor *string) dto.CreateUserRequest {
	return dto.CreateUserRequest{
		FullName:     "Luis Gómez",
		Email:        email,
		Password:     "s3cret",
		Code:         code,
		Role:         role,
		SupervisorID: supervisor,
	}
}

func newUseCase() (*usecase.UserUseCase, *memory.UserRepo) {
	repo := memory.NewUserRepository()
	return usecase.NewUserUseCase(repo, bcrypt.MinCost), repo
}

func TestCreate_NonWorkerDropsSupervisor(t *testing.T) {
	ctx := context.Background()
	uc, repo := newUseCase()

	out, err := uc.Create(ctx, createReq("sup@x.com", "S-1", entity.RoleSupervisor, strPtr("65f1c0ffee0000000000abcd")))
	require.NoError(t, err)
	assert.Nil(t, out.SupervisorID)

	stored, err := repo.FindByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.SupervisorID)
}

func TestCreate_WorkerKeepsSupervisor(t *testing.T) {
	ctx := context.Background()
	uc, repo := newUseCase()

	out, err := uc.Create(ctx, createReq("w@x.com", "W-1", entity.RoleWorker, strPtr("65f1c0ffee0000000000abcd")))
	require.NoError(t, err)
	require.NotNil(t, out.SupervisorID)
	assert.Equal(t, "65f1c0ffee0000000000abcd", *out.SupervisorID)

	stored, err := repo.FindByID(ctx, out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SupervisorID)
	assert.Equal(t, "65f1c0ffee0000000000abcd", *stored.SupervisorID)
}

func TestCreate_DuplicateEmailOrCode(t *testing.T) {
	ctx := context.Background()
	uc, repo := newUseCase()
	_, err := uc.Create(ctx, createReq("a@x.com", "E-1", entity.RoleWorker, nil))
	require.NoError(t, err)

	_, err = uc.Create(ctx, createReq("a@x.com", "E-2", entity.RoleWorker, nil))
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)
	_, err = uc.Create(ctx, createReq("b@x.com", "E-1", entity.RoleWorker, nil))
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)
	assert.Equal(t, 1, repo.Len())
}

func TestCreate_HashesPasswordAndHidesIt(t *testing.T) {
	ctx := context.Background()
	uc, repo := newUseCase()

	out, err := uc.Create(ctx, createReq("a@x.com", "E-1", entity.RoleAdmin, nil))
	require.NoError(t, err)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "$2a$")

	stored, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()
	in := createReq("w@x.com", "W-1", entity.RoleWorker, strPtr("sup-1"))

	created, err := uc.Create(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, in.FullName, got.FullName)
	assert.Equal(t, in.Email, got.Email)
	assert.Equal(t, in.Code, got.Code)
	assert.Equal(t, in.Role, got.Role)
	assert.Equal(t, *in.SupervisorID, *got.SupervisorID)
}

func TestList_NeverExposesPassword(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()
	_, err := uc.Create(ctx, createReq("a@x.com", "E-1", entity.RoleWorker, nil))
	require.NoError(t, err)
	_, err = uc.Create(ctx, createReq("b@x.com", "E-2", entity.RoleManagement, nil))
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	raw, err := json.Marshal(list)
	require.NoError(t, err)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &items))
	for _, item := range items {
		assert.NotContains(t, item, "password")
	}
}

func TestGetByID_NotFound(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdate_NormalizesSupervisorAndReplacesFields(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()
	created, err := uc.Create(ctx, createReq("w@x.com", "W-1", entity.RoleWorker, strPtr("sup-1")))
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdateUserRequest{
		FullName:     "Luis G.",
		Email:        "luis@x.com",
		Code:         "M-1",
		Role:         entity.RoleManagement,
		SupervisorID: strPtr("sup-1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Luis G.", out.FullName)
	assert.Equal(t, "luis@x.com", out.Email)
	assert.Equal(t, "M-1", out.Code)
	assert.Equal(t, entity.RoleManagement, out.Role)
	assert.Nil(t, out.SupervisorID)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.SupervisorID)
}

func TestUpdate_NotFound(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Update(context.Background(), "missing", dto.UpdateUserRequest{
		FullName: "x", Email: "x@x.com", Code: "X", Role: entity.RoleWorker,
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()

	assert.ErrorIs(t, uc.Delete(ctx, "missing"), domain.ErrUserNotFound)

	created, err := uc.Create(ctx, createReq("a@x.com", "E-1", entity.RoleWorker, nil))
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, created.ID))

	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRole(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()
	created, err := uc.Create(ctx, createReq("a@x.com", "E-1", entity.RoleAdmin, nil))
	require.NoError(t, err)

	role, err := uc.Role(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, role)

	role, err = uc.Role(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, role)
}
