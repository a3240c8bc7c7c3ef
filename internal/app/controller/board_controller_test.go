package controller

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/ikkim/furniture-backend/internal/app/repository"
	"github.com/ikkim/furniture-backend/internal/app/service"
	apperrors "github.com/ikkim/furniture-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBoardControllerTest(t *testing.T) (controllerFixture, *BoardController) {
	f := setupControllerTest(t)
	return f, NewBoardController(service.NewBoardService(repository.NewBoardRepository(f.DB)))
}

func TestBoardController_CreateListGet(t *testing.T) {
	f, ctrl := setupBoardControllerTest(t)
	f.Router.POST("/boards", as(f.User, ctrl.CreatePost))
	f.Router.GET("/boards", ctrl.ListPosts)
	f.Router.GET("/boards/:id", ctrl.GetPost)

	w := performRequest(f.Router, http.MethodPost, "/boards", map[string]string{
		"title":    "침대 프레임 문의",
		"contents": "퀸 사이즈 매트리스가 맞나요?",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody(t, w)
	assert.Equal(t, "침대 프레임 문의", created["title"])
	assert.Equal(t, f.User.Email, created["user_name"])
	id := uint(created["id"].(float64))

	w = performRequest(f.Router, http.MethodGet, "/boards?page=1&size=10&search="+url.QueryEscape("매트리스"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody(t, w)
	assert.Equal(t, float64(1), list["total"])
	assert.Equal(t, float64(10), list["size"])
	assert.Len(t, list["posts"], 1)

	w = performRequest(f.Router, http.MethodGet, fmt.Sprintf("/boards/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["view_count"])
}

func TestBoardController_Errors(t *testing.T) {
	f, ctrl := setupBoardControllerTest(t)
	f.Router.POST("/boards", as(f.User, ctrl.CreatePost))
	f.Router.PUT("/other/boards/:id", as(f.Other, ctrl.UpdatePost))
	f.Router.DELETE("/other/boards/:id", as(f.Other, ctrl.DeletePost))
	f.Router.DELETE("/admin/boards/:id", as(f.Admin, ctrl.DeletePost))
	f.Router.GET("/boards/:id", ctrl.GetPost)
	f.Router.GET("/boards", ctrl.ListPosts)

	w := performRequest(f.Router, http.MethodPost, "/boards", map[string]string{"title": "제목", "contents": "내용"})
	require.Equal(t, http.StatusCreated, w.Code)
	path := fmt.Sprintf("/boards/%d", uint(decodeBody(t, w)["id"].(float64)))

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		code   string
	}{
		{"missing contents", http.MethodPost, "/boards", map[string]string{"title": "제목"}, http.StatusBadRequest, apperrors.ValidationInvalidInput},
		{"blank title", http.MethodPost, "/boards", map[string]string{"title": "  ", "contents": "내용"}, http.StatusBadRequest, apperrors.BoardPostEmpty},
		{"unknown post", http.MethodGet, "/boards/9999", nil, http.StatusNotFound, apperrors.BoardPostNotFound},
		{"bad user filter", http.MethodGet, "/boards?user_id=abc", nil, http.StatusBadRequest, apperrors.ValidationInvalidID},
		{"other user edits", http.MethodPut, "/other" + path, map[string]string{"title": "탈취"}, http.StatusForbidden, apperrors.AuthzForbidden},
		{"other user deletes", http.MethodDelete, "/other" + path, nil, http.StatusForbidden, apperrors.AuthzForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(f.Router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}

	w = performRequest(f.Router, http.MethodDelete, "/admin"+path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = performRequest(f.Router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
