package handlers

import (
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/folio/api/http/presenter"
	"github.com/artem13815/folio/pkg/portfolio"
	"github.com/artem13815/folio/pkg/resume"
	"github.com/artem13815/folio/pkg/skill"
)

type ResumeHandler struct {
	records  portfolio.UseCase
	importer resume.ImportUseCase
	skills   skill.UseCase
	// Limit uploaded file size read into memory (bytes)
	maxBytes int64
}

func NewResumeHandler(records portfolio.UseCase, importer resume.ImportUseCase, skills skill.UseCase) *ResumeHandler {
	return &ResumeHandler{records: records, importer: importer, skills: skills, maxBytes: 15 << 20} // 15MB
}

func (h *ResumeHandler) generate(c *fiber.Ctx) (resume.Document, error) {
	owner, err := ownerID(c)
	if err != nil {
		return resume.Document{}, err
	}
	var d resume.Draft
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&d); err != nil {
			return resume.Document{}, fmt.Errorf("%w: %v", errBadBody, err)
		}
	}
	d.Normalize()
	if err := d.Validate().Err(); err != nil {
		return resume.Document{}, err
	}
	snap, err := h.records.Load(c.Context(), owner)
	if err != nil {
		return resume.Document{}, err
	}
	return resume.Generate(snap.Profile, snap.Skills, snap.Projects, d), nil
}

// Preview renders the resume from the owner's records and the posted draft.
// @Summary Preview resume
// @Tags    resume
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body resume.Draft false "draft"
// @Success 200 {object} resume.Document
// @Failure 422 {object} presenter.ValidationResponse
// @Router  /resume/preview [post]
func (h *ResumeHandler) Preview(c *fiber.Ctx) error {
	doc, err := h.generate(c)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, doc)
}

// Export returns the same document as a downloadable HTML file.
// @Summary Export resume
// @Tags    resume
// @Accept  json
// @Produce html
// @Security BearerAuth
// @Param   input body resume.Draft false "draft"
// @Success 200 {string} string "text/html attachment"
// @Failure 422 {object} presenter.ValidationResponse
// @Router  /resume/export [post]
func (h *ResumeHandler) Export(c *fiber.Ctx) error {
	doc, err := h.generate(c)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, attachment(doc.Filename))
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(http.StatusOK).SendString(doc.HTML)
}

// attachment keeps ASCII names literal and sends others as RFC 2231 filename*.
func attachment(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return `attachment; filename="resume.html"`
}

// Import reads an existing resume (PDF or DOCX) and proposes a draft.
// @Summary Import resume file
// @Tags    resume
// @Accept  multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param   file formData file true "resume file (pdf or docx)"
// @Success 200 {object} resume.ImportResult
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /resume/import [post]
func (h *ResumeHandler) Import(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return respondError(c, err)
	}
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf or docx)")
	}
	if !resume.SupportedUpload(fh.Filename) {
		return presenter.Error(c, http.StatusBadRequest, resume.ErrUnsupportedFormat.Error())
	}
	if fh.Size > h.maxBytes {
		return presenter.Error(c, http.StatusBadRequest, "file is too large (max 15MB)")
	}
	f, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to read uploaded file")
	}

	existing, err := h.skills.List(c.Context(), owner, skill.OrderByName)
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.importer.Import(c.Context(), fh.Filename, data, existing)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}
