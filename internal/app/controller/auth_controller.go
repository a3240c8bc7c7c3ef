package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/furniture-backend/internal/app/dto"
	"github.com/ikkim/furniture-backend/internal/app/service"
	apperrors "github.com/ikkim/furniture-backend/internal/errors"
	"github.com/ikkim/furniture-backend/internal/middleware"
)

// CookieOptions controls the login cookie.
type CookieOptions struct {
	MaxAge int
	Secure bool
}

type AuthController struct {
	authService service.AuthService
	cookie      CookieOptions
}

func NewAuthController(authService service.AuthService, cookie CookieOptions) *AuthController {
	return &AuthController{
		authService: authService,
		cookie:      cookie,
	}
}

type JoinRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Join handles user registration
// POST /api/v1/join
func (ctrl *AuthController) Join(c *gin.Context) {
	var req JoinRequest
	if !bindJSON(c, &req) {
		return
	}

	user, tokens, err := ctrl.authService.Join(c.Request.Context(), service.JoinInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		respondError(c, err, "create user")
		return
	}

	c.JSON(http.StatusCreated, dto.NewAuthResponse(user, tokens))
}

// Login issues an access/refresh token pair and sets the token cookie
// POST /api/v1/login
func (ctrl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, tokens, err := ctrl.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "login")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookieName, tokens.AccessToken, ctrl.cookie.MaxAge, "/", "", ctrl.cookie.Secure, true)
	c.JSON(http.StatusOK, dto.NewAuthResponse(user, tokens))
}

// Refresh exchanges a refresh token for a new access token
// POST /api/v1/refresh
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "리프레시 토큰이 필요합니다")
		return
	}

	tokens, err := ctrl.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err, "refresh token")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookieName, tokens.AccessToken, ctrl.cookie.MaxAge, "/", "", ctrl.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// Logout revokes the current access token and clears the cookie
// POST /api/v1/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), p, middleware.GetAccessToken(c)); err != nil {
		respondError(c, err, "logout")
		return
	}

	c.SetCookie(middleware.TokenCookieName, "", -1, "/", "", ctrl.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "로그아웃 되었습니다"})
}

// Me returns the caller's profile
// GET /api/v1/me
func (ctrl *AuthController) Me(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	user, err := ctrl.authService.GetUserByID(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, err, "user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserResponse(user)})
}
