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

type TeacherService interface {
	Create(ctx context.Context, adminID uint, user domain.User) (domain.User, error)
	List(ctx context.Context) ([]service.TeacherWithStats, error)
	Get(ctx context.Context, id uint) (service.TeacherWithStats, error)
	Update(ctx context.Context, id uint, update service.TeacherUpdate) (domain.User, error)
	SetStatus(ctx context.Context, id uint, status domain.UserStatus) (domain.User, error)
	Delete(ctx context.Context, id uint) error
}

type TeacherHandler struct {
	svc TeacherService
}

func NewTeacherHandler(svc TeacherService) *TeacherHandler {
	return &TeacherHandler{
		svc: svc,
	}
}

// HandleListTeachers godoc
// @Summary      List teachers with reservation stats
// @Tags         teachers
// @Produce      json
// @Security     Bearer
// @Success      200 {array}  service.TeacherWithStats
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /teachers [get]
func (h *TeacherHandler) HandleListTeachers(ctx *gin.Context) {
	teachers, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListTeachers -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, teachers)
}

// HandleGetTeacher godoc
// @Summary      Get one teacher with stats and history
// @Tags         teachers
// @Produce      json
// @Security     Bearer
// @Param        teacherID path int true "teacher ID"
// @Success      200 {object} service.TeacherWithStats
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /teachers/{teacherID} [get]
func (h *TeacherHandler) HandleGetTeacher(ctx *gin.Context) {
	id, err := pathID(ctx, "teacherID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	teacher, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderTeacherErr(ctx, "HandleGetTeacher", err)

		return
	}

	ctx.JSON(http.StatusOK, teacher)
}

// HandleCreateTeacher godoc
// @Summary      Create a teacher account
// @Tags         teachers
// @Produce      json
// @Security     Bearer
// @Param        request body request.CreateTeacherRequest true "request body"
// @Success      201 {object} domain.User
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /teachers [post]
func (h *TeacherHandler) HandleCreateTeacher(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	req := request.CreateTeacherRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	teacher, err := h.svc.Create(ctx.Request.Context(), user.ID, domain.User{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Code:     req.Code,
		Phone:    req.Phone,
	})
	if err != nil {
		renderTeacherErr(ctx, "HandleCreateTeacher", err)

		return
	}

	teacher.Password = ""

	ctx.JSON(http.StatusCreated, teacher)
}

// HandleUpdateTeacher godoc
// @Summary      Update a teacher account
// @Tags         teachers
// @Produce      json
// @Security     Bearer
// @Param        teacherID path int true "teacher ID"
// @Param        request body request.UpdateTeacherRequest true "request body"
// @Success      200 {object} domain.User
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /teachers/{teacherID} [put]
func (h *TeacherHandler) HandleUpdateTeacher(ctx *gin.Context) {
	id, err := pathID(ctx, "teacherID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateTeacherRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	teacher, err := h.svc.Update(ctx.Request.Context(), id, service.TeacherUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Code:     req.Code,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		renderTeacherErr(ctx, "HandleUpdateTeacher", err)

		return
	}

	ctx.JSON(http.StatusOK, teacher)
}

// HandleChangeTeacherStatus godoc
// @Summary      Change a teacher's status
// @Tags         teachers
// @Produce      json
// @Security     Bearer
// @Param        teacherID path int true "teacher ID"
// @Param        request body request.ChangeStatusRequest true "request body"
// @Success      200 {object} domain.User
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /teachers/{teacherID}/status [patch]
func (h *TeacherHandler) HandleChangeTeacherStatus(ctx *gin.Context) {
	id, err := pathID(ctx, "teacherID")
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

	teacher, err := h.svc.SetStatus(ctx.Request.Context(), id, domain.UserStatus(req.Status))
	if err != nil {
		renderTeacherErr(ctx, "HandleChangeTeacherStatus", err)

		return
	}

	ctx.JSON(http.StatusOK, teacher)
}

// HandleDeleteTeacher godoc
// @Summary      Delete a teacher account
// @Tags         teachers
// @Produce      json
// @Security     Bearer
// @Param        teacherID path int true "teacher ID"
// @Success      200 {object} map[string]string
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /teachers/{teacherID} [delete]
func (h *TeacherHandler) HandleDeleteTeacher(ctx *gin.Context) {
	id, err := pathID(ctx, "teacherID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderTeacherErr(ctx, "HandleDeleteTeacher", err)

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "teacher deleted"})
}

func renderTeacherErr(ctx *gin.Context, op string, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrUserNotFound):
		response.RenderErr(ctx, response.ErrNotFound(err))
	case errors.Is(err, service.ErrUserEmailExists), errors.Is(err, service.ErrUserCodeExists):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("v1.%s -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
