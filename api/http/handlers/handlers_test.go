package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apihttp "github.com/artem13815/folio/api/http"
	"github.com/artem13815/folio/api/http/handlers"
	"github.com/artem13815/folio/pkg/auth"
	"github.com/artem13815/folio/pkg/blob/local"
	"github.com/artem13815/folio/pkg/health"
	"github.com/artem13815/folio/pkg/portfolio"
	"github.com/artem13815/folio/pkg/profile"
	"github.com/artem13815/folio/pkg/project"
	"github.com/artem13815/folio/pkg/resume"
	"github.com/artem13815/folio/pkg/security/jwt"
	"github.com/artem13815/folio/pkg/skill"
	"github.com/artem13815/folio/pkg/view"
	"github.com/artem13815/folio/pkg/wizard"
)

// --- in-memory record store ---

type store struct {
	mu        sync.Mutex
	calls     int
	avatarErr error
	profiles  map[uuid.UUID]profile.Profile
	projects  []project.Project
	skills    []skill.Skill
}

func newStore() *store { return &store{profiles: map[uuid.UUID]profile.Profile{}} }

func (s *store) touch() { s.calls++ }

type profileRepo struct{ *store }

func (r profileRepo) Get(_ context.Context, id uuid.UUID) (profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()
	p, ok := r.profiles[id]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

func (r profileRepo) Upsert(_ context.Context, p profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()
	p.AvatarURL = r.profiles[p.ID].AvatarURL
	r.profiles[p.ID] = p
	return nil
}

func (r profileRepo) SetAvatarURL(_ context.Context, id uuid.UUID, u string, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()
	if r.avatarErr != nil {
		return r.avatarErr
	}
	p := r.profiles[id]
	p.ID, p.AvatarURL = id, u
	r.profiles[id] = p
	return nil
}

type projectRepo struct{ *store }

func (r projectRepo) Create(_ context.Context, p project.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()
	r.projects = append(r.projects, p)
	return nil
}

func (r projectRepo) ListByOwner(_ context.Context, owner uuid.UUID) ([]project.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()
	var out []project.Project
	for i := len(r.projects) - 1; i >= 0; i-- {
		if r.projects[i].OwnerID == owner {
			out = append(out, r.projects[i])
		}
	}
	return out, nil
}

func (r projectRepo) DeleteForOwner(_ context.Context, owner, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()
	for i, p := range r.projects {
		if p.ID == id && p.OwnerID == owner {
			r.projects = append(r.projects[:i], r.projects[i+1:]...)
			return nil
		}
	}
	return project.ErrNotFound
}

type skillRepo struct{ *store }

func (r skillRepo) Create(_ context.Context, s skill.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()
	r.skills = append(r.skills, s)
	return nil
}

func (r skillRepo) ListByOwner(_ context.Context, owner uuid.UUID, order skill.Order) ([]skill.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()
	var out []skill.Skill
	for _, s := range r.skills {
		if s.OwnerID == owner {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == skill.OrderByProficiency && out[i].Proficiency != out[j].Proficiency {
			return out[i].Proficiency > out[j].Proficiency
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r skillRepo) DeleteForOwner(_ context.Context, owner, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()
	for i, s := range r.skills {
		if s.ID == id && s.OwnerID == owner {
			r.skills = append(r.skills[:i], r.skills[i+1:]...)
			return nil
		}
	}
	return skill.ErrNotFound
}

// --- identity ---

// fakeAuth treats the bearer token as the user id.
type fakeAuth struct {
	user      uuid.UUID
	password  string
	signedOut []auth.Session
}

func (a *fakeAuth) result() auth.Result {
	s := auth.Session{UserID: a.user, SessionID: "sid", ExpiresAt: time.Now().Add(time.Hour)}
	return auth.Result{User: auth.User{ID: a.user}, Token: a.user.String(), Session: s}
}

func (a *fakeAuth) SignUp(_ context.Context, in auth.SignUpInput) (auth.Result, error) {
	if err := in.Validate().Err(); err != nil {
		return auth.Result{}, err
	}
	return a.result(), nil
}

func (a *fakeAuth) SignInWithPassword(_ context.Context, _, password string) (auth.Result, error) {
	if password != a.password {
		return auth.Result{}, auth.ErrInvalidCredentials
	}
	return a.result(), nil
}

func (a *fakeAuth) GetSession(_ context.Context, token string) (auth.Session, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return auth.Session{}, auth.ErrNoSession
	}
	return auth.Session{UserID: id, SessionID: "sid", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (a *fakeAuth) SignOut(_ context.Context, s auth.Session) error {
	a.signedOut = append(a.signedOut, s)
	return nil
}

func (a *fakeAuth) OnSessionChange(func(auth.Event)) func() { return func() {} }

// --- app ---

type env struct {
	app     *fiber.App
	store   *store
	auth    *fakeAuth
	owner   uuid.UUID
	blobDir string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	st := newStore()
	owner := uuid.New()
	fa := &fakeAuth{user: owner, password: "secret1"}

	profiles := profile.NewService(profileRepo{st})
	projects := project.NewService(projectRepo{st})
	skills := skill.NewService(skillRepo{st})
	records := portfolio.NewService(profileRepo{st}, projectRepo{st}, skillRepo{st})

	reg, err := wizard.NewRegistry(wizard.Steps(), wizard.Bodies(profiles, projects, skills, records)...)
	require.NoError(t, err)
	wiz := wizard.NewService(wizard.NewMemoryStore(), reg, zap.NewNop())

	blobDir := t.TempDir()
	blobs, err := local.New(blobDir, "http://test/media")
	require.NoError(t, err)
	views, err := view.New()
	require.NoError(t, err)

	cookie := handlers.SessionCookie{Name: "folio_session"}
	app := fiber.New(fiber.Config{BodyLimit: 16 << 20})
	apihttp.Register(app, apihttp.Handlers{
		Auth:      handlers.NewAuthHandler(fa, cookie),
		Health:    handlers.NewHealthHandler(health.NewService()),
		Profile:   handlers.NewProfileHandler(profiles, blobs, zap.NewNop()),
		Projects:  handlers.NewProjectHandler(projects),
		Skills:    handlers.NewSkillHandler(skills),
		Wizard:    handlers.NewWizardHandler(wiz),
		Resume:    handlers.NewResumeHandler(records, resume.NewImportService(nil, ""), skills),
		Portfolio: handlers.NewPortfolioHandler(records),
		Pages: handlers.NewPageHandler(handlers.PageDeps{
			Views: views, Auth: fa, Profiles: profiles, Projects: projects,
			Skills: skills, Records: records, Cookie: cookie, Log: zap.NewNop(),
		}),
	},
		jwt.NewAuthMiddleware(fa, jwt.Options{CookieName: cookie.Name}),
		jwt.NewAuthMiddleware(fa, jwt.Options{CookieName: cookie.Name, RedirectTo: "/auth"}),
	)
	return &env{app: app, store: st, auth: fa, owner: owner, blobDir: blobDir}
}

func (e *env) do(t *testing.T, method, path string, body any, signedIn bool) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if signedIn {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+e.owner.String())
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

// --- tests ---

func TestAPIRequiresSession(t *testing.T) {
	e := newEnv(t)
	resp := e.do(t, http.MethodGet, "/api/v1/projects", nil, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, e.store.calls)
}

func TestDashboard_RedirectsWithoutSession(t *testing.T) {
	e := newEnv(t)
	resp := e.do(t, http.MethodGet, "/dashboard", nil, false)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth", resp.Header.Get(fiber.HeaderLocation))
	assert.Zero(t, e.store.calls, "no record is read before the session is known")
}

func TestDashboard_RendersOwnRecords(t *testing.T) {
	e := newEnv(t)
	resp := e.do(t, http.MethodPost, "/api/v1/projects", project.Input{Title: "Folio Site"}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = e.do(t, http.MethodGet, "/dashboard", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	html := readBody(t, resp)
	assert.Contains(t, html, "Folio Site")
	assert.Contains(t, html, "Your portfolio")
}

func TestProjects_CreateListDelete(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, http.MethodPost, "/api/v1/projects",
		project.Input{Title: "API", TechStack: " Go, , Postgres "}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Project project.Project `json:"project"`
		Form    project.Input   `json:"form"`
	}
	decodeBody(t, resp, &created)
	assert.Equal(t, []string{"Go", "Postgres"}, created.Project.TechStack)
	assert.Equal(t, project.DefaultInput(), created.Form)

	resp = e.do(t, http.MethodGet, "/api/v1/projects", nil, true)
	var list []project.Project
	decodeBody(t, resp, &list)
	require.Len(t, list, 1)

	resp = e.do(t, http.MethodDelete, "/api/v1/projects/"+created.Project.ID.String(), nil, true)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = e.do(t, http.MethodDelete, "/api/v1/projects/"+created.Project.ID.String(), nil, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = e.do(t, http.MethodDelete, "/api/v1/projects/nope", nil, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProjects_ValidationFailure(t *testing.T) {
	e := newEnv(t)
	resp := e.do(t, http.MethodPost, "/api/v1/projects",
		project.Input{Title: "x", GitHubURL: "not a url"}, true)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "validation failed", body.Message)
	assert.Equal(t, "Project title must be at least 2 characters", body.Fields["title"])
	assert.Contains(t, body.Fields, "githubUrl")
	assert.Empty(t, e.store.projects)
}

func TestSkills_ProficiencyBoundsAndOrder(t *testing.T) {
	e := newEnv(t)
	resp := e.do(t, http.MethodPost, "/api/v1/skills", skill.Input{Name: "Go", Proficiency: "6"}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	for _, in := range []skill.Input{{Name: "SQL", Proficiency: "3"}, {Name: "Go", Proficiency: "5"}} {
		resp = e.do(t, http.MethodPost, "/api/v1/skills", in, true)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var byName, byLevel []skill.Skill
	decodeBody(t, e.do(t, http.MethodGet, "/api/v1/skills", nil, true), &byName)
	decodeBody(t, e.do(t, http.MethodGet, "/api/v1/skills?order=proficiency", nil, true), &byLevel)
	require.Len(t, byName, 2)
	assert.Equal(t, "Go", byName[0].Name)
	assert.Equal(t, 5, byLevel[0].Proficiency)
}

func TestResumeExport_Attachment(t *testing.T) {
	e := newEnv(t)
	resp := e.do(t, http.MethodPut, "/api/v1/profile", profile.Input{FullName: "Jane Doe"}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.do(t, http.MethodPost, "/api/v1/resume/export", resume.NewDraft(), true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="Jane Doe.html"`, resp.Header.Get(fiber.HeaderContentDisposition))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	assert.Contains(t, readBody(t, resp), "<h1>Jane Doe</h1>")
}

func TestResumeExport_NonASCIIName(t *testing.T) {
	e := newEnv(t)
	resp := e.do(t, http.MethodPut, "/api/v1/profile", profile.Input{FullName: "Zoë"}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.do(t, http.MethodPost, "/api/v1/resume/export", resume.NewDraft(), true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "attachment; filename*=utf-8''Zo%C3%AB.html", resp.Header.Get(fiber.HeaderContentDisposition))
}

func TestResumePreview_RejectsHalfFilledRow(t *testing.T) {
	e := newEnv(t)
	d := resume.NewDraft()
	d.WorkExperience[0].Company = "Acme"
	resp := e.do(t, http.MethodPost, "/api/v1/resume/preview", d, true)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestResumeImport_NotConfigured(t *testing.T) {
	e := newEnv(t)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "cv.pdf")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("%PDF-1.4"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resume/import", &buf)
	req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+e.owner.String())
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestPublicPortfolio(t *testing.T) {
	e := newEnv(t)

	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/api/v1/portfolio/"+uuid.NewString(), nil, false).StatusCode)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/api/v1/portfolio/garbage", nil, false).StatusCode)
	resp := e.do(t, http.MethodGet, "/portfolio/"+e.owner.String(), nil, false)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")

	e.do(t, http.MethodPut, "/api/v1/profile", profile.Input{FullName: "Jane Doe"}, true)
	var snap portfolio.Snapshot
	decodeBody(t, e.do(t, http.MethodGet, "/api/v1/portfolio/"+e.owner.String(), nil, false), &snap)
	assert.Equal(t, "Jane Doe", snap.Profile.FullName)
	assert.NotNil(t, snap.Projects)

	resp = e.do(t, http.MethodGet, "/portfolio/"+e.owner.String(), nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Jane Doe")
}

func TestWizard_Flow(t *testing.T) {
	e := newEnv(t)

	var v wizard.View
	decodeBody(t, e.do(t, http.MethodGet, "/api/v1/wizard", nil, true), &v)
	require.Len(t, v.Steps, 4)
	assert.Equal(t, 0, v.Index)

	resp := e.do(t, http.MethodPost, "/api/v1/wizard/steps/projects", project.Input{Title: "API"}, true)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = e.do(t, http.MethodPost, "/api/v1/wizard/steps/profile", profile.Input{FullName: "J"}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var out struct {
		Wizard wizard.View `json:"wizard"`
	}
	resp = e.do(t, http.MethodPost, "/api/v1/wizard/steps/profile", profile.Input{FullName: "Jane Doe"}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &out)
	assert.Equal(t, 1, out.Wizard.Index)

	decodeBody(t, e.do(t, http.MethodPost, "/api/v1/wizard/skip", nil, true), &v)
	assert.Equal(t, 2, v.Index)
	decodeBody(t, e.do(t, http.MethodPost, "/api/v1/wizard/back", nil, true), &v)
	assert.Equal(t, 1, v.Index)
	decodeBody(t, e.do(t, http.MethodPost, "/api/v1/wizard/skip", nil, true), &v)
	decodeBody(t, e.do(t, http.MethodPost, "/api/v1/wizard/skip", nil, true), &v)
	require.Equal(t, 3, v.Index)

	decodeBody(t, e.do(t, http.MethodPost, "/api/v1/wizard/draft/education", nil, true), &v)
	assert.Len(t, v.Draft.Education, 2)
	decodeBody(t, e.do(t, http.MethodDelete, "/api/v1/wizard/draft/education/1", nil, true), &v)
	assert.Len(t, v.Draft.Education, 1)
	resp = e.do(t, http.MethodDelete, "/api/v1/wizard/draft/education/0", nil, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "last row stays")

	resp = e.do(t, http.MethodPost, "/api/v1/wizard/steps/resume", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &out)
	assert.True(t, out.Wizard.Complete)
	assert.Equal(t, "/portfolio/"+e.owner.String(), out.Wizard.ResultURL)

	resp = e.do(t, http.MethodDelete, "/api/v1/wizard", nil, true)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Len(t, e.store.profiles, 1)
}

func TestAuthPage_Submit(t *testing.T) {
	e := newEnv(t)
	post := func(form url.Values) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(form.Encode()))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
		resp, err := e.app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp := post(url.Values{"mode": {"login"}, "email": {"jane@example.com"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Invalid email or password")

	resp = post(url.Values{"mode": {"register"}, "email": {"jane"}, "password": {"secret1"}, "fullName": {"Jane"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Please enter a valid email")

	resp = post(url.Values{"mode": {"login"}, "email": {"jane@example.com"}, "password": {"secret1"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get(fiber.HeaderLocation))
	assert.Contains(t, resp.Header.Get(fiber.HeaderSetCookie), "folio_session="+e.owner.String())
}

func TestAuthAPI_LogoutClearsCookie(t *testing.T) {
	e := newEnv(t)
	resp := e.do(t, http.MethodPost, "/api/v1/auth/logout", nil, true)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Len(t, e.auth.signedOut, 1)
	assert.Equal(t, e.owner, e.auth.signedOut[0].UserID)
}

func TestHealth(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/api/v1/health", nil, false).StatusCode)
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/api/v1/ready", nil, false).StatusCode)
}

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	jpegBytes = append([]byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), make([]byte, 32)...)
)

func (e *env) upload(t *testing.T, filename, partType string, data []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set(fiber.HeaderContentType, partType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/profile/avatar", &buf)
	req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+e.owner.String())
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *env) blobFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.blobDir)
	require.NoError(t, err)
	var names []string
	for _, en := range entries {
		names = append(names, en.Name())
	}
	return names
}

func TestAvatarUpload_StoresAndLinksProfile(t *testing.T) {
	e := newEnv(t)
	resp := e.upload(t, "me.PNG", "image/png", pngBytes)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	want := "http://test/media/" + e.owner.String() + ".png"
	assert.Equal(t, want, body["avatarUrl"])
	assert.Equal(t, want, e.store.profiles[e.owner].AvatarURL)
	assert.Equal(t, []string{e.owner.String() + ".png"}, e.blobFiles(t))

	// a new avatar of another type replaces the old file
	resp = e.upload(t, "me.jpeg", "image/jpeg", jpegBytes)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{e.owner.String() + ".jpg"}, e.blobFiles(t))
	assert.Equal(t, "http://test/media/"+e.owner.String()+".jpg", e.store.profiles[e.owner].AvatarURL)
}

func TestAvatarUpload_RejectsNonImages(t *testing.T) {
	e := newEnv(t)
	script := []byte("<script>alert(document.domain)</script>")

	cases := []struct {
		name, filename, partType string
		data                     []byte
	}{
		{"html posing as png", "x.html", "image/png", script},
		{"html with image name", "x.png", "image/png", script},
		{"png named html", "x.html", "image/png", pngBytes},
		{"png named jpg", "x.jpg", "image/png", pngBytes},
		{"non-image part type", "x.png", "text/plain", pngBytes},
		{"too large", "x.png", "image/png", append(append([]byte{}, pngBytes...), make([]byte, 5<<20)...)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := e.upload(t, tc.filename, tc.partType, tc.data)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
	assert.Empty(t, e.blobFiles(t))
	assert.Empty(t, e.store.profiles[e.owner].AvatarURL)
}

func TestAvatarUpload_ProfileUpdateFailureKeepsBlob(t *testing.T) {
	e := newEnv(t)
	e.store.avatarErr = errors.New("record store unavailable")

	resp := e.upload(t, "me.png", "image/png", pngBytes)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "record store unavailable", body["message"])
	assert.Equal(t, []string{e.owner.String() + ".png"}, e.blobFiles(t))
}
