package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/egovmeet/video-verification/internal/model"
	"github.com/egovmeet/video-verification/internal/repository"
	"github.com/egovmeet/video-verification/internal/service"
)

type AuthHandler struct {
	Sessions *service.SessionService
}

func NewAuthHandler(sessions *service.SessionService) *AuthHandler {
	return &AuthHandler{Sessions: sessions}
}

type registerReq struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserRole  string `json:"userRole"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

type authResp struct {
	AccessToken  string    `json:"accessToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	RefreshToken string    `json:"refreshToken"`
}

// Register creates an account and returns its first token pair.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.UserRole = strings.TrimSpace(req.UserRole)

	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "username and password are required")
	}
	if !model.ValidRole(req.UserRole) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "unknown role")
	}

	_, pair, err := h.Sessions.Register(c.Request().Context(),
		req.Username, req.Password, req.FirstName, req.LastName, req.UserRole)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return echo.NewHTTPError(http.StatusConflict, "username already taken")
		}
		return err
	}
	return c.JSON(http.StatusCreated, authResp{
		AccessToken:  pair.Access.Token,
		ExpiresAt:    pair.Access.Exp,
		RefreshToken: pair.Refresh.Raw,
	})
}

// Login verifies credentials and opens a session, displacing any previous one.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)

	_, pair, err := h.Sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthentication) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return err
	}
	return c.JSON(http.StatusOK, authResp{
		AccessToken:  pair.Access.Token,
		ExpiresAt:    pair.Access.Exp,
		RefreshToken: pair.Refresh.Raw,
	})
}

// Refresh rotates a refresh token for a new pair; the presented token stops
// working afterwards.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "refreshToken is required")
	}

	pair, err := h.Sessions.Refresh(c.Request().Context(), strings.TrimSpace(req.RefreshToken))
	if err != nil {
		if errors.Is(err, service.ErrAuthentication) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
		}
		return err
	}
	return c.JSON(http.StatusOK, authResp{
		AccessToken:  pair.Access.Token,
		ExpiresAt:    pair.Access.Exp,
		RefreshToken: pair.Refresh.Raw,
	})
}

// Logout drops the caller's session. Succeeds whether or not one existed.
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	if _, err := h.Sessions.Logout(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
