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

type LogbookService interface {
	CreateTemplate(ctx context.Context, adminID uint, t domain.Template) (domain.Template, error)
	ListTemplates(ctx context.Context) ([]domain.Template, error)
	GetTemplate(ctx context.Context, id uint) (domain.Template, error)
	UpdateTemplate(ctx context.Context, id uint, update service.TemplateUpdate) (domain.Template, error)
	DeleteTemplate(ctx context.Context, id uint) error
	Create(ctx context.Context, auxiliaryID uint, lb domain.Logbook) (domain.Logbook, error)
	List(ctx context.Context, user domain.User) ([]domain.Logbook, error)
	Get(ctx context.Context, user domain.User, id uint) (domain.Logbook, error)
	Update(ctx context.Context, user domain.User, id uint, update service.LogbookUpdate) (domain.Logbook, error)
	Complete(ctx context.Context, user domain.User, id uint) (domain.Logbook, error)
	Delete(ctx context.Context, id uint) error
}

type LogbookHandler struct {
	svc LogbookService
}

func NewLogbookHandler(svc LogbookService) *LogbookHandler {
	return &LogbookHandler{
		svc: svc,
	}
}

// HandleListTemplates godoc
// @Summary      List active logbook templates
// @Tags         templates
// @Produce      json
// @Security     Bearer
// @Success      200 {array}  domain.Template
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /templates [get]
func (h *LogbookHandler) HandleListTemplates(ctx *gin.Context) {
	templates, err := h.svc.ListTemplates(ctx.Request.Context())
	if err != nil {
		renderLogbookErr(ctx, "HandleListTemplates", err)

		return
	}

	ctx.JSON(http.StatusOK, templates)
}

// HandleGetTemplate godoc
// @Summary      Get one template
// @Tags         templates
// @Produce      json
// @Security     Bearer
// @Param        templateID path int true "template ID"
// @Success      200 {object} domain.Template
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /templates/{templateID} [get]
func (h *LogbookHandler) HandleGetTemplate(ctx *gin.Context) {
	id, err := pathID(ctx, "templateID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	template, err := h.svc.GetTemplate(ctx.Request.Context(), id)
	if err != nil {
		renderLogbookErr(ctx, "HandleGetTemplate", err)

		return
	}

	ctx.JSON(http.StatusOK, template)
}

// HandleCreateTemplate godoc
// @Summary      Create a logbook template
// @Tags         templates
// @Produce      json
// @Security     Bearer
// @Param        request body request.CreateTemplateRequest true "request body"
// @Success      201 {object} domain.Template
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /templates [post]
func (h *LogbookHandler) HandleCreateTemplate(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	req := request.CreateTemplateRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	template, err := h.svc.CreateTemplate(ctx.Request.Context(), user.ID, domain.Template{
		Name:       req.Name,
		Attributes: req.Attributes,
	})
	if err != nil {
		renderLogbookErr(ctx, "HandleCreateTemplate", err)

		return
	}

	ctx.JSON(http.StatusCreated, template)
}

// HandleUpdateTemplate godoc
// @Summary      Update a template
// @Tags         templates
// @Produce      json
// @Security     Bearer
// @Param        templateID path int true "template ID"
// @Param        request body request.UpdateTemplateRequest true "request body"
// @Success      200 {object} domain.Template
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /templates/{templateID} [put]
func (h *LogbookHandler) HandleUpdateTemplate(ctx *gin.Context) {
	id, err := pathID(ctx, "templateID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateTemplateRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	template, err := h.svc.UpdateTemplate(ctx.Request.Context(), id, service.TemplateUpdate{
		Name:       req.Name,
		Attributes: req.Attributes,
	})
	if err != nil {
		renderLogbookErr(ctx, "HandleUpdateTemplate", err)

		return
	}

	ctx.JSON(http.StatusOK, template)
}

// HandleDeleteTemplate godoc
// @Summary      Deactivate a template
// @Tags         templates
// @Produce      json
// @Security     Bearer
// @Param        templateID path int true "template ID"
// @Success      200 {object} map[string]string
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /templates/{templateID} [delete]
func (h *LogbookHandler) HandleDeleteTemplate(ctx *gin.Context) {
	id, err := pathID(ctx, "templateID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.DeleteTemplate(ctx.Request.Context(), id); err != nil {
		renderLogbookErr(ctx, "HandleDeleteTemplate", err)

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "template deactivated"})
}

// HandleListLogbooks godoc
// @Summary      List logbooks visible to the caller
// @Tags         logbooks
// @Produce      json
// @Security     Bearer
// @Success      200 {array}  domain.Logbook
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /logbooks [get]
func (h *LogbookHandler) HandleListLogbooks(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	logbooks, err := h.svc.List(ctx.Request.Context(), user)
	if err != nil {
		renderLogbookErr(ctx, "HandleListLogbooks", err)

		return
	}

	ctx.JSON(http.StatusOK, logbooks)
}

// HandleGetLogbook godoc
// @Summary      Get one logbook
// @Tags         logbooks
// @Produce      json
// @Security     Bearer
// @Param        logbookID path int true "logbook ID"
// @Success      200 {object} domain.Logbook
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /logbooks/{logbookID} [get]
func (h *LogbookHandler) HandleGetLogbook(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	id, err := pathID(ctx, "logbookID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	logbook, err := h.svc.Get(ctx.Request.Context(), user, id)
	if err != nil {
		renderLogbookErr(ctx, "HandleGetLogbook", err)

		return
	}

	ctx.JSON(http.StatusOK, logbook)
}

// HandleCreateLogbook godoc
// @Summary      Open a logbook from a template
// @Tags         logbooks
// @Produce      json
// @Security     Bearer
// @Param        request body request.CreateLogbookRequest true "request body"
// @Success      201 {object} domain.Logbook
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /logbooks [post]
func (h *LogbookHandler) HandleCreateLogbook(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	req := request.CreateLogbookRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	logbook, err := h.svc.Create(ctx.Request.Context(), user.ID, domain.Logbook{
		Name:         req.Name,
		TemplateID:   req.TemplateID,
		LaboratoryID: req.LaboratoryID,
	})
	if err != nil {
		renderLogbookErr(ctx, "HandleCreateLogbook", err)

		return
	}

	ctx.JSON(http.StatusCreated, logbook)
}

// HandleUpdateLogbook godoc
// @Summary      Update an open logbook
// @Tags         logbooks
// @Produce      json
// @Security     Bearer
// @Param        logbookID path int true "logbook ID"
// @Param        request body request.UpdateLogbookRequest true "request body"
// @Success      200 {object} domain.Logbook
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /logbooks/{logbookID} [put]
func (h *LogbookHandler) HandleUpdateLogbook(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	id, err := pathID(ctx, "logbookID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateLogbookRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	logbook, err := h.svc.Update(ctx.Request.Context(), user, id, service.LogbookUpdate{
		Name:    req.Name,
		Grid:    req.Grid,
		Summary: req.Summary,
	})
	if err != nil {
		renderLogbookErr(ctx, "HandleUpdateLogbook", err)

		return
	}

	ctx.JSON(http.StatusOK, logbook)
}

// HandleCompleteLogbook godoc
// @Summary      Close a logbook
// @Tags         logbooks
// @Produce      json
// @Security     Bearer
// @Param        logbookID path int true "logbook ID"
// @Success      200 {object} domain.Logbook
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /logbooks/{logbookID}/complete [patch]
func (h *LogbookHandler) HandleCompleteLogbook(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	id, err := pathID(ctx, "logbookID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	logbook, err := h.svc.Complete(ctx.Request.Context(), user, id)
	if err != nil {
		renderLogbookErr(ctx, "HandleCompleteLogbook", err)

		return
	}

	ctx.JSON(http.StatusOK, logbook)
}

// HandleDeleteLogbook godoc
// @Summary      Delete a logbook
// @Tags         logbooks
// @Produce      json
// @Security     Bearer
// @Param        logbookID path int true "logbook ID"
// @Success      200 {object} map[string]string
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /logbooks/{logbookID} [delete]
func (h *LogbookHandler) HandleDeleteLogbook(ctx *gin.Context) {
	id, err := pathID(ctx, "logbookID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderLogbookErr(ctx, "HandleDeleteLogbook", err)

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "logbook deleted"})
}

func renderLogbookErr(ctx *gin.Context, op string, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrLogbookNotFound),
		errors.Is(err, service.ErrLaboratoryNotFound):
		response.RenderErr(ctx, response.ErrNotFound(err))
	case errors.Is(err, service.ErrLogbookAccessDenied):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		err = fmt.Errorf("v1.%s -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
