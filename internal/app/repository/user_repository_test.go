package repository

import (
	"context"
	"testing"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserTest(t *testing.T) (*gorm.DB, UserRepository) {
	testDB := newTestDB(t)
	return testDB, NewUserRepository(testDB)
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name    string
		user    *model.User
		wantErr bool
	}{
		{
			name: "Valid user",
			user: &model.User{
				Email:        "test@example.com",
				PasswordHash: "hashedpassword",
				Name:         "Test User",
				Phone:        "010-1234-5678",
				Role:         model.RoleUser,
			},
			wantErr: false,
		},
		{
			name: "Admin user",
			user: &model.User{
				Email:        "admin@example.com",
				PasswordHash: "hashedpassword",
				Name:         "Admin",
				Role:         model.RoleAdmin,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, repo := setupUserTest(t)

			err := repo.Create(context.Background(), tt.user)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.NotZero(t, tt.user.ID)
		})
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	_, repo := setupUserTest(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Email: "dup@example.com", PasswordHash: "x", Name: "A"}))
	err := repo.Create(ctx, &model.User{Email: "dup@example.com", PasswordHash: "y", Name: "B"})
	assert.Error(t, err)
}

func TestUserRepository_FindByEmailAndExists(t *testing.T) {
	_, repo := setupUserTest(t)
	ctx := context.Background()

	user := &model.User{Email: "find@example.com", PasswordHash: "x", Name: "Finder"}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByEmail(ctx, "find@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	exists, err := repo.ExistsByEmail(ctx, "find@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_UpdateRefreshToken(t *testing.T) {
	_, repo := setupUserTest(t)
	ctx := context.Background()

	user := &model.User{Email: "token@example.com", PasswordHash: "x", Name: "Token"}
	require.NoError(t, repo.Create(ctx, user))

	token := "refresh-token-value"
	require.NoError(t, repo.UpdateRefreshToken(ctx, user.ID, &token))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found.RefreshToken)
	assert.Equal(t, token, *found.RefreshToken)

	require.NoError(t, repo.UpdateRefreshToken(ctx, user.ID, nil))
	found, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, found.RefreshToken)
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	_, repo := setupUserTest(t)
	ctx := context.Background()

	user := &model.User{Email: "update@example.com", PasswordHash: "x", Name: "Before"}
	require.NoError(t, repo.Create(ctx, user))

	user.Name = "After"
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", found.Name)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
