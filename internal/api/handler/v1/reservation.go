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

type ReservationService interface {
	Create(ctx context.Context, teacherID uint, r domain.Reservation) (domain.Reservation, error)
	Approve(ctx context.Context, adminID, id uint) (domain.Reservation, error)
	Reject(ctx context.Context, adminID, id uint, reason string) (domain.Reservation, error)
	Cancel(ctx context.Context, teacherID, id uint) (domain.Reservation, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, user domain.User) ([]domain.Reservation, error)
	Get(ctx context.Context, user domain.User, id uint) (domain.Reservation, error)
}

type ReservationHandler struct {
	svc ReservationService
}

func NewReservationHandler(svc ReservationService) *ReservationHandler {
	return &ReservationHandler{
		svc: svc,
	}
}

// HandleListReservations godoc
// @Summary      List reservations visible to the caller
// @Tags         reservations
// @Produce      json
// @Security     Bearer
// @Success      200 {array}  domain.Reservation
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /reservations [get]
func (h *ReservationHandler) HandleListReservations(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	reservations, err := h.svc.List(ctx.Request.Context(), user)
	if err != nil {
		renderReservationErr(ctx, "HandleListReservations", err)

		return
	}

	ctx.JSON(http.StatusOK, reservations)
}

// HandleGetReservation godoc
// @Summary      Get one reservation
// @Tags         reservations
// @Produce      json
// @Security     Bearer
// @Param        reservationID path int true "reservation ID"
// @Success      200 {object} domain.Reservation
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /reservations/{reservationID} [get]
func (h *ReservationHandler) HandleGetReservation(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	id, err := pathID(ctx, "reservationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reservation, err := h.svc.Get(ctx.Request.Context(), user, id)
	if err != nil {
		renderReservationErr(ctx, "HandleGetReservation", err)

		return
	}

	ctx.JSON(http.StatusOK, reservation)
}

// HandleCreateReservation godoc
// @Summary      Request a laboratory reservation
// @Tags         reservations
// @Produce      json
// @Security     Bearer
// @Param        request body request.CreateReservationRequest true "request body"
// @Success      201 {object} domain.Reservation
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      409 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /reservations [post]
func (h *ReservationHandler) HandleCreateReservation(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	req := request.CreateReservationRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reservation, err := h.svc.Create(ctx.Request.Context(), user.ID, domain.Reservation{
		LaboratoryID: req.LaboratoryID,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Subject:      req.Subject,
		Description:  req.Description,
	})
	if err != nil {
		renderReservationErr(ctx, "HandleCreateReservation", err)

		return
	}

	ctx.JSON(http.StatusCreated, reservation)
}

// HandleApproveReservation godoc
// @Summary      Approve a pending reservation
// @Tags         reservations
// @Produce      json
// @Security     Bearer
// @Param        reservationID path int true "reservation ID"
// @Success      200 {object} domain.Reservation
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      409 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /reservations/{reservationID}/approve [patch]
func (h *ReservationHandler) HandleApproveReservation(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	id, err := pathID(ctx, "reservationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reservation, err := h.svc.Approve(ctx.Request.Context(), user.ID, id)
	if err != nil {
		renderReservationErr(ctx, "HandleApproveReservation", err)

		return
	}

	ctx.JSON(http.StatusOK, reservation)
}

// HandleRejectReservation godoc
// @Summary      Reject a pending reservation
// @Tags         reservations
// @Produce      json
// @Security     Bearer
// @Param        reservationID path int true "reservation ID"
// @Param        request body request.RejectReservationRequest true "request body"
// @Success      200 {object} domain.Reservation
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /reservations/{reservationID}/reject [patch]
func (h *ReservationHandler) HandleRejectReservation(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	id, err := pathID(ctx, "reservationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.RejectReservationRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reservation, err := h.svc.Reject(ctx.Request.Context(), user.ID, id, req.Reason)
	if err != nil {
		renderReservationErr(ctx, "HandleRejectReservation", err)

		return
	}

	ctx.JSON(http.StatusOK, reservation)
}

// HandleCancelReservation godoc
// @Summary      Cancel an own pending reservation
// @Tags         reservations
// @Produce      json
// @Security     Bearer
// @Param        reservationID path int true "reservation ID"
// @Success      200 {object} domain.Reservation
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /reservations/{reservationID}/cancel [patch]
func (h *ReservationHandler) HandleCancelReservation(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	id, err := pathID(ctx, "reservationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reservation, err := h.svc.Cancel(ctx.Request.Context(), user.ID, id)
	if err != nil {
		renderReservationErr(ctx, "HandleCancelReservation", err)

		return
	}

	ctx.JSON(http.StatusOK, reservation)
}

// HandleDeleteReservation godoc
// @Summary      Delete a reservation
// @Tags         reservations
// @Produce      json
// @Security     Bearer
// @Param        reservationID path int true "reservation ID"
// @Success      200 {object} map[string]string
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /reservations/{reservationID} [delete]
func (h *ReservationHandler) HandleDeleteReservation(ctx *gin.Context) {
	id, err := pathID(ctx, "reservationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderReservationErr(ctx, "HandleDeleteReservation", err)

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "reservation deleted"})
}

// renderReservationErr maps service errors to transport errors. 409 is
// reserved for slot overlaps; a decision against a non-pending row is
// 400, naming the observed state.
func renderReservationErr(ctx *gin.Context, op string, err error) {
	var validationErr *service.ValidationError
	var stateErr *service.InvalidStateError

	switch {
	case errors.As(err, &validationErr):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.As(err, &stateErr):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrReservationConflict):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrReservationNotFound), errors.Is(err, service.ErrLaboratoryNotFound):
		response.RenderErr(ctx, response.ErrNotFound(err))
	case errors.Is(err, service.ErrLaboratoryUnavailable):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrReservationAccessDenied):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		err = fmt.Errorf("v1.%s -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
