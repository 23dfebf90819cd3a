package http

import (
	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	"github.com/artem13815/folio/api/http/handlers"
)

// Handlers groups every handler the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Health    *handlers.HealthHandler
	Profile   *handlers.ProfileHandler
	Projects  *handlers.ProjectHandler
	Skills    *handlers.SkillHandler
	Wizard    *handlers.WizardHandler
	Resume    *handlers.ResumeHandler
	Portfolio *handlers.PortfolioHandler
	Pages     *handlers.PageHandler
}

// Register wires all HTTP routes onto given Fiber app. apiAuth answers 401 JSON,
// pageAuth redirects to the sign-in page.
func Register(app *fiber.App, h Handlers, apiAuth, pageAuth fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)
	a.Post("/logout", apiAuth, h.Auth.Logout)
	a.Get("/session", apiAuth, h.Auth.Session)

	v1.Get("/portfolio/:id", h.Portfolio.Get)

	p := v1.Group("/profile", apiAuth)
	p.Get("/", h.Profile.Get)
	p.Put("/", h.Profile.Save)
	p.Post("/avatar", h.Profile.UploadAvatar)

	pr := v1.Group("/projects", apiAuth)
	pr.Get("/", h.Projects.List)
	pr.Post("/", h.Projects.Create)
	pr.Delete("/:id", h.Projects.Delete)

	sk := v1.Group("/skills", apiAuth)
	sk.Get("/", h.Skills.List)
	sk.Post("/", h.Skills.Create)
	sk.Delete("/:id", h.Skills.Delete)

	wz := v1.Group("/wizard", apiAuth)
	wz.Get("/", h.Wizard.Get)
	wz.Delete("/", h.Wizard.Restart)
	wz.Post("/steps/:step", h.Wizard.Submit)
	wz.Post("/skip", h.Wizard.Skip)
	wz.Post("/back", h.Wizard.Back)
	wz.Put("/draft", h.Wizard.SaveDraft)
	wz.Post("/draft/education", h.Wizard.AddEducation)
	wz.Delete("/draft/education/:index", h.Wizard.RemoveEducation)
	wz.Post("/draft/experience", h.Wizard.AddExperience)
	wz.Delete("/draft/experience/:index", h.Wizard.RemoveExperience)

	rs := v1.Group("/resume", apiAuth)
	rs.Post("/preview", h.Resume.Preview)
	rs.Post("/export", h.Resume.Export)
	rs.Post("/import", h.Resume.Import)

	// Server-rendered pages
	app.Get("/", h.Pages.Landing)
	app.Get("/auth", h.Pages.AuthPage)
	app.Post("/auth", h.Pages.AuthSubmit)
	app.Post("/logout", h.Pages.Logout)
	app.Get("/dashboard", pageAuth, h.Pages.Dashboard)
	app.Get("/portfolio/:id", h.Pages.Portfolio)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)
}
