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

type TaskService interface {
	Create(ctx context.Context, adminID uint, task domain.Task) (domain.Task, error)
	List(ctx context.Context, user domain.User) ([]domain.Task, error)
	Get(ctx context.Context, user domain.User, id uint) (domain.Task, error)
	Update(ctx context.Context, id uint, update service.TaskUpdate) (domain.Task, error)
	Complete(ctx context.Context, user domain.User, id uint, evidence []string) (domain.Task, error)
	Delete(ctx context.Context, id uint) error
}

type TaskHandler struct {
	svc TaskService
}

func NewTaskHandler(svc TaskService) *TaskHandler {
	return &TaskHandler{
		svc: svc,
	}
}

// HandleListTasks godoc
// @Summary      List tasks visible to the caller
// @Tags         tasks
// @Produce      json
// @Security     Bearer
// @Success      200 {array}  domain.Task
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /tasks [get]
func (h *TaskHandler) HandleListTasks(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	tasks, err := h.svc.List(ctx.Request.Context(), user)
	if err != nil {
		renderTaskErr(ctx, "HandleListTasks", err)

		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

// HandleGetTask godoc
// @Summary      Get one task
// @Tags         tasks
// @Produce      json
// @Security     Bearer
// @Param        taskID path int true "task ID"
// @Success      200 {object} domain.Task
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /tasks/{taskID} [get]
func (h *TaskHandler) HandleGetTask(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	id, err := pathID(ctx, "taskID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	task, err := h.svc.Get(ctx.Request.Context(), user, id)
	if err != nil {
		renderTaskErr(ctx, "HandleGetTask", err)

		return
	}

	ctx.JSON(http.StatusOK, task)
}

// HandleCreateTask godoc
// @Summary      Create a maintenance task
// @Tags         tasks
// @Produce      json
// @Security     Bearer
// @Param        request body request.CreateTaskRequest true "request body"
// @Success      201 {object} domain.Task
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /tasks [post]
func (h *TaskHandler) HandleCreateTask(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	req := request.CreateTaskRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	task, err := h.svc.Create(ctx.Request.Context(), user.ID, domain.Task{
		Title:        req.Title,
		Description:  req.Description,
		LaboratoryID: req.LaboratoryID,
		AuxiliaryID:  req.AuxiliaryID,
		Priority:     domain.TaskPriority(req.Priority),
		DueDate:      req.DueDate,
		Tags:         req.Tags,
	})
	if err != nil {
		renderTaskErr(ctx, "HandleCreateTask", err)

		return
	}

	ctx.JSON(http.StatusCreated, task)
}

// HandleUpdateTask godoc
// @Summary      Update a task
// @Tags         tasks
// @Produce      json
// @Security     Bearer
// @Param        taskID path int true "task ID"
// @Param        request body request.UpdateTaskRequest true "request body"
// @Success      200 {object} domain.Task
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /tasks/{taskID} [put]
func (h *TaskHandler) HandleUpdateTask(ctx *gin.Context) {
	id, err := pathID(ctx, "taskID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateTaskRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var priority *domain.TaskPriority
	if req.Priority != nil {
		p := domain.TaskPriority(*req.Priority)
		priority = &p
	}

	task, err := h.svc.Update(ctx.Request.Context(), id, service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		AuxiliaryID: req.AuxiliaryID,
		Priority:    priority,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	})
	if err != nil {
		renderTaskErr(ctx, "HandleUpdateTask", err)

		return
	}

	ctx.JSON(http.StatusOK, task)
}

// HandleCompleteTask godoc
// @Summary      Mark a task as completed
// @Tags         tasks
// @Produce      json
// @Security     Bearer
// @Param        taskID path int true "task ID"
// @Param        request body request.CompleteTaskRequest false "request body"
// @Success      200 {object} domain.Task
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /tasks/{taskID}/complete [patch]
func (h *TaskHandler) HandleCompleteTask(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	id, err := pathID(ctx, "taskID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.CompleteTaskRequest{}
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}
	}

	task, err := h.svc.Complete(ctx.Request.Context(), user, id, req.Evidence)
	if err != nil {
		renderTaskErr(ctx, "HandleCompleteTask", err)

		return
	}

	ctx.JSON(http.StatusOK, task)
}

// HandleDeleteTask godoc
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     Bearer
// @Param        taskID path int true "task ID"
// @Success      200 {object} map[string]string
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /tasks/{taskID} [delete]
func (h *TaskHandler) HandleDeleteTask(ctx *gin.Context) {
	id, err := pathID(ctx, "taskID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderTaskErr(ctx, "HandleDeleteTask", err)

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

func renderTaskErr(ctx *gin.Context, op string, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrTaskNotFound), errors.Is(err, service.ErrLaboratoryNotFound):
		response.RenderErr(ctx, response.ErrNotFound(err))
	case errors.Is(err, service.ErrTaskAccessDenied):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		err = fmt.Errorf("v1.%s -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
