package handler

import (
	"net/http"

	"github.com/SallyAnnCreed/Costing-App/internal/apierror"
	"github.com/SallyAnnCreed/Costing-App/internal/dto"
	"github.com/SallyAnnCreed/Costing-App/internal/middleware"
	"github.com/SallyAnnCreed/Costing-App/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogsHandler exposes the three reference price lists.
type CatalogsHandler struct{ svc service.CatalogService }

func NewCatalogsHandler(svc service.CatalogService) *CatalogsHandler {
	return &CatalogsHandler{svc: svc}
}

// ── Labels ───────────────────────────────────────────────────────────────────

func (h *CatalogsHandler) ListLabels(c *gin.Context) {
	resp, err := h.svc.ListLabels(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list labels"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogsHandler) CreateLabel(c *gin.Context) {
	var req dto.CreateLabelRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateLabel(c.Request.Context(), req, middleware.Editor(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogsHandler) UpdateLabel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateLabelRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateLabel(c.Request.Context(), id, req, middleware.Editor(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogsHandler) DeleteLabel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.DeleteLabel(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Packaging ────────────────────────────────────────────────────────────────

func (h *CatalogsHandler) ListPackaging(c *gin.Context) {
	resp, err := h.svc.ListPackaging(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list packaging"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogsHandler) CreatePackaging(c *gin.Context) {
	var req dto.CreatePackagingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreatePackaging(c.Request.Context(), req, middleware.Editor(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogsHandler) UpdatePackaging(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdatePackagingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdatePackaging(c.Request.Context(), id, req, middleware.Editor(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogsHandler) AddPackagingExtra(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.AddExtraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddPackagingExtra(c.Request.Context(), id, req, middleware.Editor(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogsHandler) DeletePackaging(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.DeletePackaging(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Raw materials ────────────────────────────────────────────────────────────

func (h *CatalogsHandler) ListRawMaterials(c *gin.Context) {
	resp, err := h.svc.ListRawMaterials(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list raw materials"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogsHandler) CreateRawMaterial(c *gin.Context) {
	var req dto.CreateRawMaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateRawMaterial(c.Request.Context(), req, middleware.Editor(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogsHandler) UpdateRawMaterial(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateRawMaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateRawMaterial(c.Request.Context(), id, req, middleware.Editor(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogsHandler) SetMeasurement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.MeasurementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetMeasurement(c.Request.Context(), id, req.Measurement, middleware.Editor(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogsHandler) DeleteRawMaterial(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.DeleteRawMaterial(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
