package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/folio/api/http/presenter"
	"github.com/artem13815/folio/pkg/blob"
	"github.com/artem13815/folio/pkg/profile"
)

const maxAvatarBytes = 5 << 20

type ProfileHandler struct {
	profiles profile.UseCase
	blobs    blob.Store
	log      *zap.Logger
}

func NewProfileHandler(profiles profile.UseCase, blobs blob.Store, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, blobs: blobs, log: log.Named("profile")}
}

type profileResponse struct {
	Profile *profile.Profile `json:"profile"`
	Form    profile.Input    `json:"form"`
}

// Get returns the profile and the editor form prefilled from it.
// @Summary Get own profile
// @Tags    profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} profileResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return respondError(c, err)
	}
	p, err := h.profiles.Get(c.Context(), owner)
	if errors.Is(err, profile.ErrNotFound) {
		return presenter.JSON(c, http.StatusOK, profileResponse{})
	}
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, profileResponse{Profile: &p, Form: profile.InputFrom(p)})
}

// Save creates or replaces the profile.
// @Summary Save own profile
// @Tags    profile
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body profile.Input true "profile form"
// @Success 200 {object} profileResponse
// @Failure 422 {object} presenter.ValidationResponse
// @Router  /profile [put]
func (h *ProfileHandler) Save(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in profile.Input
	if err := c.BodyParser(&in); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	p, err := h.profiles.Save(c.Context(), owner, in)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, profileResponse{Profile: &p, Form: profile.InputFrom(p)})
}

// UploadAvatar stores the image under the owner's id and points the profile at it.
// The stored type and extension come from the sniffed bytes, never from the
// client's filename or part header.
// @Summary Upload avatar
// @Tags    profile
// @Accept  multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param   file formData file true "PNG, JPEG, GIF or WebP image, at most 5 MB"
// @Success 200 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /profile/avatar [post]
func (h *ProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return respondError(c, err)
	}
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required")
	}
	if fh.Size > maxAvatarBytes {
		return presenter.Error(c, http.StatusBadRequest, "image must be at most 5 MB")
	}
	if !strings.HasPrefix(fh.Header.Get(fiber.HeaderContentType), "image/") {
		return presenter.Error(c, http.StatusBadRequest, "file must be an image")
	}

	f, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxAvatarBytes+1))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to read uploaded file")
	}
	if len(data) > maxAvatarBytes {
		return presenter.Error(c, http.StatusBadRequest, "image must be at most 5 MB")
	}

	contentType := http.DetectContentType(data)
	ext, ok := blob.AvatarExt(contentType)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "file must be a PNG, JPEG, GIF or WebP image")
	}
	if named := blob.NormalizeExt(filepath.Ext(fh.Filename)); named != "" && named != ext {
		return presenter.Error(c, http.StatusBadRequest, "file extension does not match its content")
	}

	path := blob.AvatarPath(owner.String(), ext)
	err = h.blobs.Upload(c.Context(), blob.Object{
		Path:        path,
		Body:        bytes.NewReader(data),
		Size:        int64(len(data)),
		ContentType: contentType,
	}, true)
	if err != nil {
		return respondError(c, err)
	}
	url := h.blobs.PublicURL(path)
	if err := h.profiles.SetAvatar(c.Context(), owner, url); err != nil {
		// the blob stays stored; a retry overwrites it
		h.log.Warn("avatar stored but profile not updated",
			zap.String("owner", owner.String()), zap.String("path", path), zap.Error(err))
		return respondError(c, err)
	}
	// an earlier avatar of another type would otherwise linger under the owner's id
	for _, stale := range blob.StaleAvatarPaths(owner.String(), ext) {
		if err := h.blobs.Delete(c.Context(), stale); err != nil {
			h.log.Warn("remove previous avatar", zap.String("path", stale), zap.Error(err))
		}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"avatarUrl": url})
}
