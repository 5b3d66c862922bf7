package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/madiyara/file-vault/internal/config"
	"github.com/madiyara/file-vault/internal/middleware"
	"github.com/madiyara/file-vault/internal/model"
	"github.com/madiyara/file-vault/internal/repository"
	"github.com/madiyara/file-vault/internal/utils"
)

// dbTimeout bounds every store round trip issued from a handler.
const dbTimeout = 5 * time.Second

// UserStore is the credential store consumed by the auth handler.
type UserStore interface {
	Create(ctx context.Context, id, passwordHash string) error
	GetByID(ctx context.Context, id string) (model.User, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// TokenStore is the refresh-token ledger consumed by the auth handler.
type TokenStore interface {
	ReplaceRefresh(ctx context.Context, userID, token string, expiresAt time.Time) error
	FindValidRefresh(ctx context.Context, userID string) (model.RefreshToken, error)
	RevokeAll(ctx context.Context, userID string) (int64, error)
}

// AuthHandler implements sign-up, sign-in, refresh, logout and info.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Tokens TokenStore
}

func NewAuthHandler(cfg config.Config, u UserStore, t TokenStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type credentialsReq struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

type tokenPairResp struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// issuePair mints an access+refresh pair for the user and records the
// refresh token in the ledger, superseding any previous one. Every
// issuance path (sign-up, sign-in, refresh) goes through here, which is
// what keeps at most one live refresh token per user.
func (h *AuthHandler) issuePair(ctx context.Context, userID string) (tokenPairResp, error) {
	access, err := utils.NewToken(h.Cfg.AccessSecret, userID,
		time.Duration(h.Cfg.AccessTTLMin)*time.Minute)
	if err != nil {
		return tokenPairResp{}, err
	}
	refresh, err := utils.NewToken(h.Cfg.RefreshSecret, userID,
		time.Duration(h.Cfg.RefreshTTLDays)*24*time.Hour)
	if err != nil {
		return tokenPairResp{}, err
	}
	if err := h.Tokens.ReplaceRefresh(ctx, userID, refresh.Token, refresh.Exp); err != nil {
		return tokenPairResp{}, err
	}
	return tokenPairResp{AccessToken: access.Token, RefreshToken: refresh.Token}, nil
}

// SignUp creates a user and returns a token pair immediately. A
// duplicate id answers 400 with a distinct message; the store maps a
// primary-key collision to the same error, so the pre-check racing with
// a concurrent sign-up still ends in a duplicate response.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.ID == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "id and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	exists, err := h.Users.Exists(ctx, req.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	if exists {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "a user with this id already exists"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	if err := h.Users.Create(ctx, req.ID, hash); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "a user with this id already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}

	pair, err := h.issuePair(ctx, req.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	return c.JSON(http.StatusCreated, pair)
}

// SignIn verifies credentials and returns a fresh pair. Unknown id and
// wrong password produce the same answer so callers cannot enumerate
// registered ids.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.ID == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "id and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "id or password is incorrect"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "id or password is incorrect"})
	}

	pair, err := h.issuePair(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	return c.JSON(http.StatusOK, pair)
}

// Refresh exchanges a refresh token for a new pair. The presented token
// must carry a valid signature under the refresh secret, match a live
// ledger row, and equal the stored string exactly: a superseded token
// still passes the signature check but fails the comparison. Every
// successful call rotates the token, so each refresh token is single-use.
func (h *AuthHandler) Refresh(c echo.Context) error {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "refresh token is required"})
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	userID, err := utils.ParseToken(raw, h.Cfg.RefreshSecret)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "invalid refresh token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rec, err := h.Tokens.FindValidRefresh(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "invalid refresh token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	if rec.Token != raw {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "invalid refresh token"})
	}

	pair, err := h.issuePair(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	return c.JSON(http.StatusOK, pair)
}

// Logout revokes every token row of the authenticated caller. Access
// tokens are not recalled; they expire on their own within minutes.
func (h *AuthHandler) Logout(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "no token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	n, err := h.Tokens.RevokeAll(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	if n == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "token is not found"})
	}
	return c.NoContent(http.StatusOK)
}

// Info returns the id of the authenticated caller as resolved by the
// access guard. No store access.
func (h *AuthHandler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"id": middleware.UserID(c)})
}
