package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/labasis/labasis-api/internal/api/handler/v1/request"
	"github.com/labasis/labasis-api/internal/api/handler/v1/response"
	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/service"
)

type LostItemService interface {
	Create(ctx context.Context, userID uint, item domain.LostItem) (domain.LostItem, error)
	List(ctx context.Context, state domain.LostItemState, labID uint) ([]domain.LostItem, error)
	Get(ctx context.Context, id uint) (domain.LostItem, error)
	Update(ctx context.Context, id uint, update service.LostItemUpdate) (domain.LostItem, error)
	Deliver(ctx context.Context, id uint, deliveredTo string) (domain.LostItem, error)
	Delete(ctx context.Context, id uint) error
}

type LostItemHandler struct {
	svc LostItemService
}

func NewLostItemHandler(svc LostItemService) *LostItemHandler {
	return &LostItemHandler{
		svc: svc,
	}
}

// HandleListLostItems godoc
// @Summary      List lost items
// @Tags         lost-items
// @Produce      json
// @Security     Bearer
// @Param        state         query string false "filter by state"
// @Param        laboratory_id query int    false "filter by laboratory"
// @Success      200 {array}  domain.LostItem
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /lost-items [get]
func (h *LostItemHandler) HandleListLostItems(ctx *gin.Context) {
	state := domain.LostItemState(ctx.Query("state"))

	var labID uint
	if raw := ctx.Query("laboratory_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid laboratory_id")))

			return
		}
		labID = uint(parsed)
	}

	items, err := h.svc.List(ctx.Request.Context(), state, labID)
	if err != nil {
		renderLostItemErr(ctx, "HandleListLostItems", err)

		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleGetLostItem godoc
// @Summary      Get one lost item
// @Tags         lost-items
// @Produce      json
// @Security     Bearer
// @Param        itemID path int true "lost item ID"
// @Success      200 {object} domain.LostItem
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /lost-items/{itemID} [get]
func (h *LostItemHandler) HandleGetLostItem(ctx *gin.Context) {
	id, err := pathID(ctx, "itemID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	item, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		renderLostItemErr(ctx, "HandleGetLostItem", err)

		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleCreateLostItem godoc
// @Summary      Register a found object
// @Tags         lost-items
// @Produce      json
// @Security     Bearer
// @Param        request body request.CreateLostItemRequest true "request body"
// @Success      201 {object} domain.LostItem
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /lost-items [post]
func (h *LostItemHandler) HandleCreateLostItem(ctx *gin.Context) {
	user, err := currentUser(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	req := request.CreateLostItemRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	item, err := h.svc.Create(ctx.Request.Context(), user.ID, domain.LostItem{
		Description:  req.Description,
		LaboratoryID: req.LaboratoryID,
		FoundAt:      req.FoundAt,
		Notes:        req.Notes,
	})
	if err != nil {
		renderLostItemErr(ctx, "HandleCreateLostItem", err)

		return
	}

	ctx.JSON(http.StatusCreated, item)
}

// HandleUpdateLostItem godoc
// @Summary      Update a stored lost item
// @Tags         lost-items
// @Produce      json
// @Security     Bearer
// @Param        itemID path int true "lost item ID"
// @Param        request body request.UpdateLostItemRequest true "request body"
// @Success      200 {object} domain.LostItem
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /lost-items/{itemID} [put]
func (h *LostItemHandler) HandleUpdateLostItem(ctx *gin.Context) {
	id, err := pathID(ctx, "itemID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.UpdateLostItemRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	item, err := h.svc.Update(ctx.Request.Context(), id, service.LostItemUpdate{
		Description: req.Description,
		FoundAt:     req.FoundAt,
		Notes:       req.Notes,
	})
	if err != nil {
		renderLostItemErr(ctx, "HandleUpdateLostItem", err)

		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleDeliverLostItem godoc
// @Summary      Mark a lost item as delivered
// @Tags         lost-items
// @Produce      json
// @Security     Bearer
// @Param        itemID path int true "lost item ID"
// @Param        request body request.DeliverLostItemRequest true "request body"
// @Success      200 {object} domain.LostItem
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /lost-items/{itemID}/deliver [patch]
func (h *LostItemHandler) HandleDeliverLostItem(ctx *gin.Context) {
	id, err := pathID(ctx, "itemID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	req := request.DeliverLostItemRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	item, err := h.svc.Deliver(ctx.Request.Context(), id, req.DeliveredTo)
	if err != nil {
		renderLostItemErr(ctx, "HandleDeliverLostItem", err)

		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleDeleteLostItem godoc
// @Summary      Delete a lost item
// @Tags         lost-items
// @Produce      json
// @Security     Bearer
// @Param        itemID path int true "lost item ID"
// @Success      200 {object} map[string]string
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /lost-items/{itemID} [delete]
func (h *LostItemHandler) HandleDeleteLostItem(ctx *gin.Context) {
	id, err := pathID(ctx, "itemID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		renderLostItemErr(ctx, "HandleDeleteLostItem", err)

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "lost item deleted"})
}

func renderLostItemErr(ctx *gin.Context, op string, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrLostItemNotFound), errors.Is(err, service.ErrLaboratoryNotFound):
		response.RenderErr(ctx, response.ErrNotFound(err))
	default:
		err = fmt.Errorf("v1.%s -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
