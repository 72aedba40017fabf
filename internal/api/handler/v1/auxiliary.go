package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labasis/labasis-api/internal/api/handler/v1/request"
	"github.com/labasis/labasis-api/internal/api/handler/v1/response"
	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/service"
)

type AuxiliaryService interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id uint) (service.AuxiliaryDetail, error)
	Update(ctx context.Context, id uint, update service.AuxiliaryUpdate) (domain.User, error)
	SetStatus(ctx context.Context, id uint, status domain.UserStatus) (domain.User, error)
	Delete(ctx context.Context, id uint) error
	AssignLaboratories(ctx context.Context, adminID, auxiliaryID uint, labIDs []uint) ([]domain.AuxiliaryAssignment, error)
	SetSchedule(ctx context.Context, adminID, auxiliaryID uint, windows []domain.ScheduleWindow) ([]domain.ScheduleWindow, error)
}

type AuxiliaryHandler struct {
	svc AuxiliaryService
}

func NewAuxiliaryHandler(svc AuxiliaryService) *AuxiliaryHandler {
	return &AuxiliaryHandler{
		svc: svc,
	}
}

// HandleListAuxiliaries godoc
// @Summary      List auxiliary accounts
// @Tags         auxiliaries
// @Produce      json
// @Security     Bearer
// @Success      200 {array}  domain.User
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /auxiliaries [get]
func (h *AuxiliaryHandler) HandleListAuxiliaries(ctx *gin.Context) {
	auxiliaries, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		renderTeacherErr(ctx, "HandleListAuxiliaries", err)

		return
	}

	ctx.JSON(http.StatusOK, auxiliaries)
}

// HandleGetAuxiliary godoc
// @Summary      Get one auxiliary with assignments and schedule
// @Tags         auxiliaries
// @Produce      json
// @Security     Bearer
// @Param        auxiliaryID path int true "auxiliary ID"
// @Success      200 {object} service.AuxiliaryDetail
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /auxiliaries/{auxiliaryID} [get]
func (h *AuxiliaryHandler) HandleGetAuxiliary(ctx *gin.Context) {
	id, err := pathID(ctx, "auxiliaryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	detail, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderTeacherErr(ctx, "HandleGetAuxiliary", err)

		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// HandleCreateAuxiliary godoc
// @Summary      Create an auxiliary account
// @Tags         auxiliaries
// @Produce      json
// @Security     Bearer
// @Param        request body request.CreateAuxiliaryRequest true "request body"
// @Success      201 {object} domain.User
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /auxiliaries [post]
func (h *AuxiliaryHandler) HandleCreateAuxiliary(ctx *gin.Context) {
	req := request.CreateAuxiliaryRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	auxiliary, err := h.svc.Create(ctx.Request.Context(), domain.User{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		renderTeacherErr(ctx, "HandleCreateAuxiliary", err)

		return
	}

	auxiliary.Password = ""

	ctx.JSON(http.StatusCreated, auxiliary)
}

// HandleUpdateAuxiliary godoc
// @Summary      Update an auxiliary account
// @Tags         auxiliaries
// @Produce      json
// @Security     Bearer
// @Param        auxiliaryID path int true "auxiliary ID"
// @Param        request body request.UpdateAuxiliaryRequest true "request body"
// @Success      200 {object} domain.User
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /auxiliaries/{auxiliaryID} [put]
func (h *AuxiliaryHandler) HandleUpdateAuxiliary(ctx *gin.Context) {
	id, err := pathID(ctx, "auxiliaryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateAuxiliaryRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	auxiliary, err := h.svc.Update(ctx.Request.Context(), id, service.AuxiliaryUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		renderTeacherErr(ctx, "HandleUpdateAuxiliary", err)

		return
	}

	ctx.JSON(http.StatusOK, auxiliary)
}

// HandleChangeAuxiliaryStatus godoc
// @Summary      Change an auxiliary's status
// @Tags         auxiliaries
// @Produce      json
// @Security     Bearer
// @Param        auxiliaryID path int true "auxiliary ID"
// @Param        request body request.ChangeStatusRequest true "request body"
// @Success      200 {object} domain.User
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /auxiliaries/{auxiliaryID}/status [patch]
func (h *AuxiliaryHandler) HandleChangeAuxiliaryStatus(ctx *gin.Context) {
	id, err := pathID(ctx, "auxiliaryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.ChangeStatusRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	auxiliary, err := h.svc.SetStatus(ctx.Request.Context(), id, domain.UserStatus(req.Status))
	if err != nil {
		renderTeacherErr(ctx, "HandleChangeAuxiliaryStatus", err)

		return
	}

	ctx.JSON(http.StatusOK, auxiliary)
}

// HandleDeleteAuxiliary godoc
// @Summary      Delete an auxiliary account
// @Tags         auxiliaries
// @Produce      json
// @Security     Bearer
// @Param        auxiliaryID path int true "auxiliary ID"
// @Success      200 {object} map[string]string
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /auxiliaries/{auxiliaryID} [delete]
func (h *AuxiliaryHandler) HandleDeleteAuxiliary(ctx *gin.Context) {
	id, err := pathID(ctx, "auxiliaryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderTeacherErr(ctx, "HandleDeleteAuxiliary", err)

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "auxiliary deleted"})
}

// HandleAssignLaboratories godoc
// @Summary      Replace an auxiliary's laboratory assignments
// @Tags         auxiliaries
// @Produce      json
// @Security     Bearer
// @Param        auxiliaryID path int true "auxiliary ID"
// @Param        request body request.AssignLaboratoriesRequest true "request body"
// @Success      200 {array}  domain.AuxiliaryAssignment
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /auxiliaries/{auxiliaryID}/laboratories [put]
func (h *AuxiliaryHandler) HandleAssignLaboratories(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	id, err := pathID(ctx, "auxiliaryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.AssignLaboratoriesRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	assignments, err := h.svc.AssignLaboratories(ctx.Request.Context(), user.ID, id, req.LaboratoryIDs)
	if err != nil {
		renderTeacherErr(ctx, "HandleAssignLaboratories", err)

		return
	}

	ctx.JSON(http.StatusOK, assignments)
}

// HandleSetSchedule godoc
// @Summary      Replace an auxiliary's weekly schedule
// @Tags         auxiliaries
// @Produce      json
// @Security     Bearer
// @Param        auxiliaryID path int true "auxiliary ID"
// @Param        request body request.SetScheduleRequest true "request body"
// @Success      200 {array}  domain.ScheduleWindow
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /auxiliaries/{auxiliaryID}/schedules [put]
func (h *AuxiliaryHandler) HandleSetSchedule(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	id, err := pathID(ctx, "auxiliaryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.SetScheduleRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	windows := make([]domain.ScheduleWindow, 0, len(req.Windows))
	for _, w := range req.Windows {
		windows = append(windows, domain.ScheduleWindow{
			Day:       domain.Weekday(w.Day),
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}

	saved, err := h.svc.SetSchedule(ctx.Request.Context(), user.ID, id, windows)
	if err != nil {
		renderTeacherErr(ctx, "HandleSetSchedule", err)

		return
	}

	ctx.JSON(http.StatusOK, saved)
}
