package handler

import (
	"net/http"

	"github.com/SallyAnnCreed/Costing-App/internal/apierror"
	"github.com/SallyAnnCreed/Costing-App/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ArchiveHandler exposes the archived-products collection.
type ArchiveHandler struct{ svc service.ProductService }

func NewArchiveHandler(svc service.ProductService) *ArchiveHandler {
	return &ArchiveHandler{svc: svc}
}

func (h *ArchiveHandler) List(c *gin.Context) {
	resp, err := h.svc.ListArchived(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list archived products"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ArchiveHandler) Restore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Restore(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ArchiveHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.DeleteArchived(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
