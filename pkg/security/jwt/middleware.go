package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/folio/pkg/auth"
)

// SessionSource resolves a raw token to a live session.
type SessionSource interface {
	GetSession(ctx context.Context, token string) (auth.Session, error)
}

const (
	localUserID  = "userId"
	localSession = "session"
)

// Options selects where the token may come from and how a missing session is answered.
type Options struct {
	CookieName string
	// RedirectTo, when set, answers with 302 instead of 401 JSON (page routes).
	RedirectTo string
}

// NewAuthMiddleware returns a Fiber middleware that resolves the session from a
// Bearer token or the session cookie. On success sets user id (subject) into
// c.Locals("userId").
func NewAuthMiddleware(sessions SessionSource, opts Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessions.GetSession(c.Context(), TokenFromRequest(c, opts.CookieName))
		if err != nil {
			if opts.RedirectTo != "" {
				return c.Redirect(opts.RedirectTo, http.StatusFound)
			}
			if errors.Is(err, auth.ErrNoSession) {
				return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired session"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		c.Locals(localUserID, sess.UserID.String())
		c.Locals(localSession, sess)
		return c.Next()
	}
}

// TokenFromRequest reads "Authorization: Bearer <token>" (or a bare token)
// and falls back to the cookie.
func TokenFromRequest(c *fiber.Ctx, cookieName string) string {
	if h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); h != "" {
		if scheme, tok, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
		return h
	}
	if cookieName != "" {
		return c.Cookies(cookieName)
	}
	return ""
}

// UserID returns the authenticated owner set by the middleware.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	s, _ := c.Locals(localUserID).(string)
	id, err := uuid.Parse(s)
	return id, err == nil
}

// SessionFrom returns the session set by the middleware.
func SessionFrom(c *fiber.Ctx) (auth.Session, bool) {
	s, ok := c.Locals(localSession).(auth.Session)
	return s, ok
}
