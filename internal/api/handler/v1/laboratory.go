package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labasis/labasis-api/internal/api/handler/v1/request"
	"github.com/labasis/labasis-api/internal/api/handler/v1/response"
	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/service"
)

type LaboratoryService interface {
	Create(ctx context.Context, adminID uint, lab domain.Laboratory) (domain.Laboratory, error)
	List(ctx context.Context, user domain.User) ([]domain.Laboratory, error)
	Get(ctx context.Context, id uint) (domain.Laboratory, error)
	Update(ctx context.Context, adminID, id uint, update service.LaboratoryUpdate) (domain.Laboratory, error)
	Delete(ctx context.Context, id uint) error
}

type LaboratoryHandler struct {
	svc LaboratoryService
}

func NewLaboratoryHandler(svc LaboratoryService) *LaboratoryHandler {
	return &LaboratoryHandler{
		svc: svc,
	}
}

// HandleListLaboratories godoc
// @Summary      List laboratories visible to the caller
// @Tags         laboratories
// @Produce      json
// @Security     Bearer
// @Success      200 {array}  domain.Laboratory
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /laboratories [get]
func (h *LaboratoryHandler) HandleListLaboratories(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	labs, err := h.svc.List(ctx.Request.Context(), user)
	if err != nil {
		err = fmt.Errorf("v1.HandleListLaboratories -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, labs)
}

// HandleGetLaboratory godoc
// @Summary      Get one laboratory
// @Tags         laboratories
// @Produce      json
// @Security     Bearer
// @Param        laboratoryID path int true "laboratory ID"
// @Success      200 {object} domain.Laboratory
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /laboratories/{laboratoryID} [get]
func (h *LaboratoryHandler) HandleGetLaboratory(ctx *gin.Context) {
	id, err := pathID(ctx, "laboratoryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	lab, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderLaboratoryErr(ctx, "HandleGetLaboratory", err)

		return
	}

	ctx.JSON(http.StatusOK, lab)
}

// HandleCreateLaboratory godoc
// @Summary      Create a laboratory
// @Tags         laboratories
// @Produce      json
// @Security     Bearer
// @Param        request body request.CreateLaboratoryRequest true "request body"
// @Success      201 {object} domain.Laboratory
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /laboratories [post]
func (h *LaboratoryHandler) HandleCreateLaboratory(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	req := request.CreateLaboratoryRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	lab, err := h.svc.Create(ctx.Request.Context(), user.ID, domain.Laboratory{
		Name:         req.Name,
		Code:         req.Code,
		Location:     req.Location,
		Capacity:     req.Capacity,
		State:        domain.LaboratoryState(req.State),
		Equipment:    req.Equipment,
		OpeningHours: req.OpeningHours,
		Images:       req.Images,
	})
	if err != nil {
		renderLaboratoryErr(ctx, "HandleCreateLaboratory", err)

		return
	}

	ctx.JSON(http.StatusCreated, lab)
}

// HandleUpdateLaboratory godoc
// @Summary      Update a laboratory
// @Tags         laboratories
// @Produce      json
// @Security     Bearer
// @Param        laboratoryID path int true "laboratory ID"
// @Param        request body request.UpdateLaboratoryRequest true "request body"
// @Success      200 {object} domain.Laboratory
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /laboratories/{laboratoryID} [put]
func (h *LaboratoryHandler) HandleUpdateLaboratory(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	id, err := pathID(ctx, "laboratoryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateLaboratoryRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var state *domain.LaboratoryState
	if req.State != nil {
		s := domain.LaboratoryState(*req.State)
		state = &s
	}

	lab, err := h.svc.Update(ctx.Request.Context(), user.ID, id, service.LaboratoryUpdate{
		Name:         req.Name,
		Code:         req.Code,
		Location:     req.Location,
		Capacity:     req.Capacity,
		State:        state,
		Equipment:    req.Equipment,
		OpeningHours: req.OpeningHours,
		Images:       req.Images,
	})
	if err != nil {
		renderLaboratoryErr(ctx, "HandleUpdateLaboratory", err)

		return
	}

	ctx.JSON(http.StatusOK, lab)
}

// HandleDeleteLaboratory godoc
// @Summary      Delete a laboratory
// @Tags         laboratories
// @Produce      json
// @Security     Bearer
// @Param        laboratoryID path int true "laboratory ID"
// @Success      200 {object} map[string]string
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /laboratories/{laboratoryID} [delete]
func (h *LaboratoryHandler) HandleDeleteLaboratory(ctx *gin.Context) {
	id, err := pathID(ctx, "laboratoryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderLaboratoryErr(ctx, "HandleDeleteLaboratory", err)

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "laboratory deleted"})
}

func renderLaboratoryErr(ctx *gin.Context, op string, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrLaboratoryNotFound):
		response.RenderErr(ctx, response.ErrNotFound(err))
	case errors.Is(err, service.ErrLaboratoryCodeExists):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("v1.%s -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
