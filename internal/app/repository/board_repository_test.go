package repository

import (
	"context"
	"testing"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardRepository_Lifecycle(t *testing.T) {
	testDB := newTestDB(t)
	f := seedCatalog(t, testDB, 1)
	repo := NewBoardRepository(testDB)
	ctx := context.Background()

	post := &model.BoardPost{UserID: f.User.ID, Title: "배송 문의", Contents: "소파 배송 일정이 궁금합니다"}
	require.NoError(t, repo.Create(ctx, post))
	assert.NotZero(t, post.ID)
	assert.Equal(t, "Buyer", post.User.Name)

	require.NoError(t, repo.IncrementViewCount(ctx, post.ID))
	require.NoError(t, repo.IncrementViewCount(ctx, post.ID))

	post.Title = "배송 문의 (수정)"
	post.ViewCount = 0
	require.NoError(t, repo.Update(ctx, post))

	found, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "배송 문의 (수정)", found.Title)
	assert.Equal(t, 2, found.ViewCount, "update must not reset the counter")

	require.NoError(t, repo.Delete(ctx, post.ID))
	_, err = repo.FindByID(ctx, post.ID)
	assert.Error(t, err)
}

func TestBoardRepository_FindAll(t *testing.T) {
	testDB := newTestDB(t)
	f := seedCatalog(t, testDB, 1)
	repo := NewBoardRepository(testDB)
	ctx := context.Background()

	other := &model.User{Email: "other@example.com", PasswordHash: "hash", Name: "Other", Role: model.RoleUser}
	require.NoError(t, testDB.Create(other).Error)

	for _, p := range []model.BoardPost{
		{UserID: f.User.ID, Title: "Oak table review", Contents: "Solid and heavy"},
		{UserID: f.User.ID, Title: "Assembly tips", Contents: "Use the OAK dowels first"},
		{UserID: other.ID, Title: "Lamp question", Contents: "Which bulb fits?"},
	} {
		post := p
		require.NoError(t, repo.Create(ctx, &post))
	}

	tests := []struct {
		name      string
		query     model.BoardQuery
		limit     int
		wantTotal int64
		wantLen   int
	}{
		{"all", model.BoardQuery{}, 0, 3, 3},
		{"paged", model.BoardQuery{}, 2, 3, 2},
		{"search is case insensitive across title and contents", model.BoardQuery{Search: "oak"}, 0, 2, 2},
		{"by author", model.BoardQuery{UserID: &other.ID}, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, total, err := repo.FindAll(ctx, tt.query, tt.limit, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Len(t, posts, tt.wantLen)
		})
	}

	posts, _, err := repo.FindAll(ctx, model.BoardQuery{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Lamp question", posts[0].Title, "newest first")
}
