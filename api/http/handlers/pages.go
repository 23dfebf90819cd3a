package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/artem13815/folio/pkg/auth"
	"github.com/artem13815/folio/pkg/portfolio"
	"github.com/artem13815/folio/pkg/profile"
	"github.com/artem13815/folio/pkg/project"
	"github.com/artem13815/folio/pkg/security/jwt"
	"github.com/artem13815/folio/pkg/skill"
	"github.com/artem13815/folio/pkg/validation"
	"github.com/artem13815/folio/pkg/view"
	"github.com/artem13815/folio/pkg/wizard"
)

// PageHandler serves the server-rendered pages.
type PageHandler struct {
	views    *view.Renderer
	auth     auth.UseCase
	profiles profile.UseCase
	projects project.UseCase
	skills   skill.UseCase
	records  portfolio.UseCase
	cookie   SessionCookie
	log      *zap.Logger
}

type PageDeps struct {
	Views    *view.Renderer
	Auth     auth.UseCase
	Profiles profile.UseCase
	Projects project.UseCase
	Skills   skill.UseCase
	Records  portfolio.UseCase
	Cookie   SessionCookie
	Log      *zap.Logger
}

func NewPageHandler(d PageDeps) *PageHandler {
	return &PageHandler{
		views:    d.Views,
		auth:     d.Auth,
		profiles: d.Profiles,
		projects: d.Projects,
		skills:   d.Skills,
		records:  d.Records,
		cookie:   d.Cookie,
		log:      d.Log.Named("pages"),
	}
}

func (h *PageHandler) render(c *fiber.Ctx, status int, name string, data any) error {
	c.Status(status)
	c.Type("html", "utf-8")
	if err := h.views.Render(c, name, data); err != nil {
		h.log.Error("render page", zap.String("page", name), zap.Error(err))
		return c.Status(http.StatusInternalServerError).SendString("internal error")
	}
	return nil
}

// session looks the visitor up without requiring one.
func (h *PageHandler) session(c *fiber.Ctx) (auth.Session, bool) {
	s, err := h.auth.GetSession(c.Context(), jwt.TokenFromRequest(c, h.cookie.Name))
	return s, err == nil
}

func (h *PageHandler) Landing(c *fiber.Ctx) error {
	_, signedIn := h.session(c)
	return h.render(c, http.StatusOK, view.Landing, view.Page{SignedIn: signedIn})
}

func (h *PageHandler) AuthPage(c *fiber.Ctx) error {
	if _, ok := h.session(c); ok {
		return c.Redirect("/dashboard", http.StatusFound)
	}
	return h.render(c, http.StatusOK, view.Auth, view.AuthPage{})
}

// AuthSubmit handles both the sign-in and the registration form.
func (h *PageHandler) AuthSubmit(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	var (
		res auth.Result
		err error
	)
	if c.FormValue("mode") == "register" {
		res, err = h.auth.SignUp(c.Context(), auth.SignUpInput{
			Email:    email,
			Password: password,
			FullName: c.FormValue("fullName"),
		})
	} else {
		res, err = h.auth.SignInWithPassword(c.Context(), email, password)
	}
	if err != nil {
		status, msg := http.StatusInternalServerError, err.Error()
		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			status = http.StatusUnprocessableEntity
			msg = firstMessage(verr.Fields)
		case errors.Is(err, auth.ErrInvalidCredentials):
			status, msg = http.StatusUnauthorized, "Invalid email or password"
		case errors.Is(err, auth.ErrUserAlreadyExists):
			status, msg = http.StatusConflict, "An account with this email already exists"
		}
		return h.render(c, status, view.Auth, view.AuthPage{Error: msg, Email: email})
	}
	h.cookie.set(c, res.Token, res.Session.ExpiresAt)
	return c.Redirect("/dashboard", http.StatusSeeOther)
}

func (h *PageHandler) Logout(c *fiber.Ctx) error {
	if s, ok := h.session(c); ok {
		if err := h.auth.SignOut(c.Context(), s); err != nil {
			h.log.Warn("sign out", zap.Error(err))
		}
	}
	h.cookie.clear(c)
	return c.Redirect("/", http.StatusSeeOther)
}

// Dashboard sits behind the page auth gate; records are only read once a
// session is established.
func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Redirect("/auth", http.StatusFound)
	}
	data := view.DashboardPage{
		SignedIn:     true,
		Tab:          view.NormalizeTab(c.Query("tab")),
		PortfolioURL: wizard.ResultURL(owner),
	}

	g, ctx := errgroup.WithContext(c.Context())
	g.Go(func() error {
		p, err := h.profiles.Get(ctx, owner)
		if errors.Is(err, profile.ErrNotFound) {
			return nil
		}
		data.Profile = p
		return err
	})
	g.Go(func() error {
		items, err := h.projects.List(ctx, owner)
		data.Projects = items
		return err
	})
	g.Go(func() error {
		items, err := h.skills.List(ctx, owner, skill.OrderByName)
		data.Skills = items
		return err
	})
	if err := g.Wait(); err != nil {
		h.log.Error("load dashboard", zap.String("owner", owner.String()), zap.Error(err))
		return c.Status(http.StatusInternalServerError).SendString(err.Error())
	}
	return h.render(c, http.StatusOK, view.Dashboard, data)
}

func (h *PageHandler) Portfolio(c *fiber.Ctx) error {
	_, signedIn := h.session(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.render(c, http.StatusNotFound, view.NotFound, view.Page{SignedIn: signedIn})
	}
	snap, err := h.records.Public(c.Context(), id)
	if errors.Is(err, portfolio.ErrNotFound) {
		return h.render(c, http.StatusNotFound, view.NotFound, view.Page{SignedIn: signedIn})
	}
	if err != nil {
		h.log.Error("load portfolio", zap.String("owner", id.String()), zap.Error(err))
		return c.Status(http.StatusInternalServerError).SendString(err.Error())
	}
	return h.render(c, http.StatusOK, view.Portfolio, view.PortfolioPage{
		SignedIn: signedIn,
		Profile:  snap.Profile,
		Projects: snap.Projects,
		Skills:   snap.Skills,
	})
}

func firstMessage(v validation.Violations) string {
	for _, k := range []string{"email", "password", "fullName"} {
		if m, ok := v[k]; ok {
			return m
		}
	}
	return "Please check the form"
}
