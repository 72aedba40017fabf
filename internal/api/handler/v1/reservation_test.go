package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labasis/labasis-api/internal/api/middleware"
	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/service"
)

type fakeReservationService struct {
	createFn  func(ctx context.Context, teacherID uint, r domain.Reservation) (domain.Reservation, error)
	approveFn func(ctx context.Context, adminID, id uint) (domain.Reservation, error)
	rejectFn  func(ctx context.Context, adminID, id uint, reason string) (domain.Reservation, error)
	cancelFn  func(ctx context.Context, teacherID, id uint) (domain.Reservation, error)
	deleteFn  func(ctx context.Context, id uint) error
	listFn    func(ctx context.Context, user domain.User) ([]domain.Reservation, error)
	getFn     func(ctx context.Context, user domain.User, id uint) (domain.Reservation, error)
}

func (f *fakeReservationService) Create(ctx context.Context, teacherID uint, r domain.Reservation) (domain.Reservation, error) {
	return f.createFn(ctx, teacherID, r)
}

func (f *fakeReservationService) Approve(ctx context.Context, adminID, id uint) (domain.Reservation, error) {
	return f.approveFn(ctx, adminID, id)
}

func (f *fakeReservationService) Reject(ctx context.Context, adminID, id uint, reason string) (domain.Reservation, error) {
	return f.rejectFn(ctx, adminID, id, reason)
}

func (f *fakeReservationService) Cancel(ctx context.Context, teacherID, id uint) (domain.Reservation, error) {
	return f.cancelFn(ctx, teacherID, id)
}

func (f *fakeReservationService) Delete(ctx context.Context, id uint) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeReservationService) List(ctx context.Context, user domain.User) ([]domain.Reservation, error) {
	return f.listFn(ctx, user)
}

func (f *fakeReservationService) Get(ctx context.Context, user domain.User, id uint) (domain.Reservation, error) {
	return f.getFn(ctx, user, id)
}

// injectIdentity stands in for VerifyJWT in handler tests.
func injectIdentity(id uint, role domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, id)
		ctx.Set(middleware.ContextKeyUserRole, role)
		ctx.Next()
	}
}

func newReservationTestRouter(svc *fakeReservationService, id uint, role domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewReservationHandler(svc)
	router := gin.New()
	group := router.Group("/reservations", injectIdentity(id, role))
	group.GET("", h.HandleListReservations)
	group.GET("/:reservationID", h.HandleGetReservation)
	group.POST("", h.HandleCreateReservation)
	group.PATCH("/:reservationID/approve", h.HandleApproveReservation)
	group.PATCH("/:reservationID/reject", h.HandleRejectReservation)
	group.PATCH("/:reservationID/cancel", h.HandleCancelReservation)
	group.DELETE("/:reservationID", h.HandleDeleteReservation)

	return router
}

const createReservationBody = `{
	"laboratory_id": 1,
	"date": "2026-09-15",
	"start_time": "10:00",
	"end_time": "12:00",
	"subject": "Organic chemistry practical"
}`

func TestHandleCreateReservation(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeReservationService{
			createFn: func(_ context.Context, teacherID uint, r domain.Reservation) (domain.Reservation, error) {
				assert.Equal(t, uint(7), teacherID)
				assert.Equal(t, "Organic chemistry practical", r.Subject)
				r.ID = 1
				r.TeacherID = teacherID
				r.State = domain.ReservationPending

				return r, nil
			},
		}
		router := newReservationTestRouter(svc, 7, domain.RoleTeacher)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(createReservationBody))
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"state":"pending"`)
	})

	t.Run("request validation rejects malformed time", func(t *testing.T) {
		svc := &fakeReservationService{
			createFn: func(context.Context, uint, domain.Reservation) (domain.Reservation, error) {
				t.Fatal("service must not be called")

				return domain.Reservation{}, nil
			},
		}
		router := newReservationTestRouter(svc, 7, domain.RoleTeacher)

		body := strings.Replace(createReservationBody, "10:00", "10am", 1)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("conflict", func(t *testing.T) {
		svc := &fakeReservationService{
			createFn: func(context.Context, uint, domain.Reservation) (domain.Reservation, error) {
				return domain.Reservation{}, service.ErrReservationConflict
			},
		}
		router := newReservationTestRouter(svc, 7, domain.RoleTeacher)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(createReservationBody))
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)
		assert.JSONEq(t, `{"error": "an approved reservation already occupies that time slot"}`, rec.Body.String())
	})

	t.Run("unknown laboratory", func(t *testing.T) {
		svc := &fakeReservationService{
			createFn: func(context.Context, uint, domain.Reservation) (domain.Reservation, error) {
				return domain.Reservation{}, service.ErrLaboratoryNotFound
			},
		}
		router := newReservationTestRouter(svc, 7, domain.RoleTeacher)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(createReservationBody))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleApproveReservation(t *testing.T) {
	t.Run("already decided renders bad request", func(t *testing.T) {
		svc := &fakeReservationService{
			approveFn: func(context.Context, uint, uint) (domain.Reservation, error) {
				return domain.Reservation{}, &service.InvalidStateError{Op: "approve", State: domain.ReservationRejected}
			},
		}
		router := newReservationTestRouter(svc, 1, domain.RoleAdmin)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/reservations/5/approve", nil)
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "cannot approve a reservation in state 'rejected'")
	})

	t.Run("invalid path id", func(t *testing.T) {
		router := newReservationTestRouter(&fakeReservationService{}, 1, domain.RoleAdmin)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/reservations/abc/approve", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleRejectReservation(t *testing.T) {
	t.Run("requires a reason", func(t *testing.T) {
		router := newReservationTestRouter(&fakeReservationService{}, 1, domain.RoleAdmin)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/reservations/5/reject", strings.NewReader(`{"reason": ""}`))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejecting a decided reservation renders bad request", func(t *testing.T) {
		svc := &fakeReservationService{
			rejectFn: func(context.Context, uint, uint, string) (domain.Reservation, error) {
				return domain.Reservation{}, &service.InvalidStateError{Op: "reject", State: domain.ReservationRejected}
			},
		}
		router := newReservationTestRouter(svc, 1, domain.RoleAdmin)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/reservations/5/reject", strings.NewReader(`{"reason": "room already booked"}`))
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "cannot reject a reservation in state 'rejected'")
	})

	t.Run("passes the reason through", func(t *testing.T) {
		svc := &fakeReservationService{
			rejectFn: func(_ context.Context, adminID, id uint, reason string) (domain.Reservation, error) {
				assert.Equal(t, uint(1), adminID)
				assert.Equal(t, uint(5), id)
				assert.Equal(t, "equipment maintenance", reason)

				return domain.Reservation{ID: id, State: domain.ReservationRejected, RejectionReason: reason}, nil
			},
		}
		router := newReservationTestRouter(svc, 1, domain.RoleAdmin)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/reservations/5/reject", strings.NewReader(`{"reason": "equipment maintenance"}`))
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"state":"rejected"`)
	})
}

func TestHandleCancelReservation(t *testing.T) {
	svc := &fakeReservationService{
		cancelFn: func(context.Context, uint, uint) (domain.Reservation, error) {
			return domain.Reservation{}, service.NewValidationError("approved reservations cannot be cancelled; contact the administrator")
		},
	}
	router := newReservationTestRouter(svc, 7, domain.RoleTeacher)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/reservations/5/cancel", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "contact the administrator")
}

func TestHandleGetReservation(t *testing.T) {
	t.Run("access denied", func(t *testing.T) {
		svc := &fakeReservationService{
			getFn: func(context.Context, domain.User, uint) (domain.Reservation, error) {
				return domain.Reservation{}, service.ErrReservationAccessDenied
			},
		}
		router := newReservationTestRouter(svc, 8, domain.RoleTeacher)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/reservations/5", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeReservationService{
			getFn: func(context.Context, domain.User, uint) (domain.Reservation, error) {
				return domain.Reservation{}, service.ErrReservationNotFound
			},
		}
		router := newReservationTestRouter(svc, 1, domain.RoleAdmin)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/reservations/5", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleListReservations(t *testing.T) {
	svc := &fakeReservationService{
		listFn: func(_ context.Context, user domain.User) ([]domain.Reservation, error) {
			assert.Equal(t, uint(7), user.ID)
			assert.Equal(t, domain.RoleTeacher, user.Role)

			return []domain.Reservation{{ID: 1, TeacherID: 7}}, nil
		},
	}
	router := newReservationTestRouter(svc, 7, domain.RoleTeacher)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"teacher_id":7`)
}

func TestHandleDeleteReservation(t *testing.T) {
	svc := &fakeReservationService{
		deleteFn: func(_ context.Context, id uint) error {
			assert.Equal(t, uint(5), id)

			return nil
		},
	}
	router := newReservationTestRouter(svc, 1, domain.RoleAdmin)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/reservations/5", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "reservation deleted"}`, rec.Body.String())
}
