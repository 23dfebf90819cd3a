package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/folio/api/http/presenter"
	"github.com/artem13815/folio/pkg/portfolio"
)

type PortfolioHandler struct {
	records portfolio.UseCase
}

func NewPortfolioHandler(records portfolio.UseCase) *PortfolioHandler {
	return &PortfolioHandler{records: records}
}

// Get returns the public portfolio of one owner. No session is required.
// @Summary Public portfolio
// @Tags    portfolio
// @Produce json
// @Param   id path string true "owner id"
// @Success 200 {object} portfolio.Snapshot
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /portfolio/{id} [get]
func (h *PortfolioHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return presenter.Error(c, http.StatusNotFound, portfolio.ErrNotFound.Error())
	}
	snap, err := h.records.Public(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, snap)
}
