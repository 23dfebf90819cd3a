package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/folio/api/http/presenter"
	"github.com/artem13815/folio/pkg/auth"
	"github.com/artem13815/folio/pkg/security/jwt"
)

// SessionCookie describes the cookie carrying the session token for pages.
type SessionCookie struct {
	Name   string
	Secure bool
}

func (s SessionCookie) set(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     s.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		Secure:   s.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (s SessionCookie) clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		Secure:   s.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

type AuthHandler struct {
	useCase auth.UseCase
	cookie  SessionCookie
}

func NewAuthHandler(useCase auth.UseCase, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{useCase: useCase, cookie: cookie}
}

type sessionResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func toSessionResponse(r auth.Result) sessionResponse {
	return sessionResponse{
		ID:        r.User.ID.String(),
		Email:     r.User.Email,
		CreatedAt: r.User.CreatedAt,
		Token:     r.Token,
		ExpiresAt: r.Session.ExpiresAt,
	}
}

// Register handles user registration; the profile is seeded with the full name.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body auth.SignUpInput true "registration payload"
// @Success 201 {object} sessionResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req auth.SignUpInput
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	result, err := h.useCase.SignUp(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	h.cookie.set(c, result.Token, result.Session.ExpiresAt)
	return presenter.JSON(c, http.StatusCreated, toSessionResponse(result))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} sessionResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Email == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}
	result, err := h.useCase.SignInWithPassword(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	h.cookie.set(c, result.Token, result.Session.ExpiresAt)
	return presenter.JSON(c, http.StatusOK, toSessionResponse(result))
}

// Logout revokes the current session.
// @Summary Logout
// @Tags    auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, ok := jwt.SessionFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, auth.ErrNoSession.Error())
	}
	if err := h.useCase.SignOut(c.Context(), sess); err != nil {
		return respondError(c, err)
	}
	h.cookie.clear(c)
	return c.SendStatus(http.StatusNoContent)
}

// Session returns the current session.
// @Summary Current session
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.Session
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	sess, ok := jwt.SessionFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, auth.ErrNoSession.Error())
	}
	return presenter.JSON(c, http.StatusOK, sess)
}
