package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/repository"
)

type fakeReservationRepo struct {
	byID   map[uint]domain.Reservation
	nextID uint

	// beforeTransition runs at the start of TransitionFromPending so
	// tests can simulate a concurrent decision winning the race.
	beforeTransition func()
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		byID:   map[uint]domain.Reservation{},
		nextID: 1,
	}
}

func (f *fakeReservationRepo) seed(r domain.Reservation) domain.Reservation {
	if r.ID == 0 {
		r.ID = f.nextID
		f.nextID++
	} else if r.ID >= f.nextID {
		f.nextID = r.ID + 1
	}
	f.byID[r.ID] = r

	return r
}

func (f *fakeReservationRepo) Create(_ context.Context, r domain.Reservation) (domain.Reservation, error) {
	return f.seed(r), nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id uint) (domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return domain.Reservation{}, repository.ErrReservationNotFound
	}

	return r, nil
}

func (f *fakeReservationRepo) FindByIDAndTeacher(_ context.Context, id, teacherID uint) (domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok || r.TeacherID != teacherID {
		return domain.Reservation{}, repository.ErrReservationNotFound
	}

	return r, nil
}

func (f *fakeReservationRepo) FindAll(_ context.Context) ([]domain.Reservation, error) {
	return f.list(func(domain.Reservation) bool { return true }), nil
}

func (f *fakeReservationRepo) FindByTeacherID(_ context.Context, teacherID uint) ([]domain.Reservation, error) {
	return f.list(func(r domain.Reservation) bool { return r.TeacherID == teacherID }), nil
}

func (f *fakeReservationRepo) FindByState(_ context.Context, state domain.ReservationState) ([]domain.Reservation, error) {
	return f.list(func(r domain.Reservation) bool { return r.State == state }), nil
}

func (f *fakeReservationRepo) HasApprovedOverlap(_ context.Context, r domain.Reservation, excludeID uint) (bool, error) {
	for _, existing := range f.byID {
		if existing.ID == excludeID || existing.State != domain.ReservationApproved {
			continue
		}
		if domain.Overlaps(existing, r) {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeReservationRepo) TransitionFromPending(_ context.Context, id uint, updates map[string]any) error {
	if f.beforeTransition != nil {
		f.beforeTransition()
	}

	r, ok := f.byID[id]
	if !ok || r.State != domain.ReservationPending {
		return repository.ErrStateNotPending
	}

	if state, ok := updates["state"].(string); ok {
		r.State = domain.ReservationState(state)
	}
	if reason, ok := updates["rejection_reason"].(string); ok {
		r.RejectionReason = reason
	}
	if by, ok := updates["approved_by"].(uint); ok {
		r.ApprovedBy = &by
	}
	if at, ok := updates["approved_at"].(time.Time); ok {
		r.ApprovedAt = &at
	}
	f.byID[id] = r

	return nil
}

func (f *fakeReservationRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrReservationNotFound
	}
	delete(f.byID, id)

	return nil
}

func (f *fakeReservationRepo) list(keep func(domain.Reservation) bool) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(f.byID))
	for _, r := range f.byID {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

type fakeLabReader struct {
	labs map[uint]domain.Laboratory
}

func (f *fakeLabReader) FindByID(_ context.Context, id uint) (domain.Laboratory, error) {
	lab, ok := f.labs[id]
	if !ok {
		return domain.Laboratory{}, repository.ErrLaboratoryNotFound
	}

	return lab, nil
}

type fakeAssignments struct {
	pairs map[string]bool
}

func (f *fakeAssignments) HasAssignment(_ context.Context, auxiliaryID, labID uint) (bool, error) {
	return f.pairs[fmt.Sprintf("%d-%d", auxiliaryID, labID)], nil
}

var testNow = time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)

func newTestReservationService(repo *fakeReservationRepo) (*ReservationService, *fakeAssignments) {
	labs := &fakeLabReader{labs: map[uint]domain.Laboratory{
		1: {ID: 1, Name: "Chemistry Lab", Code: "CHEM-1", State: domain.LaboratoryActive},
		2: {ID: 2, Name: "Old Lab", Code: "OLD-1", State: domain.LaboratoryInactive},
	}}
	assignments := &fakeAssignments{pairs: map[string]bool{}}

	svc := NewReservationService(repo, labs, assignments)
	svc.now = func() time.Time { return testNow }

	return svc, assignments
}

func validRequest() domain.Reservation {
	return domain.Reservation{
		LaboratoryID: 1,
		Date:         "2026-09-15",
		StartTime:    "10:00",
		EndTime:      "12:00",
		Subject:      "Organic chemistry practical",
	}
}

func TestReservationService_Create(t *testing.T) {
	t.Run("happy path creates a pending reservation", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)

		created, err := svc.Create(context.Background(), 7, validRequest())
		require.NoError(t, err)
		assert.Equal(t, domain.ReservationPending, created.State)
		assert.Equal(t, uint(7), created.TeacherID)
		assert.NotZero(t, created.ID)
	})

	t.Run("missing required fields", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)

		r := validRequest()
		r.Subject = "   "

		_, err := svc.Create(context.Background(), 7, r)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("unknown laboratory", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)

		r := validRequest()
		r.LaboratoryID = 99

		_, err := svc.Create(context.Background(), 7, r)
		require.ErrorIs(t, err, ErrLaboratoryNotFound)
	})

	t.Run("inactive laboratory", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)

		r := validRequest()
		r.LaboratoryID = 2

		_, err := svc.Create(context.Background(), 7, r)
		require.ErrorIs(t, err, ErrLaboratoryUnavailable)
	})

	t.Run("malformed date and time", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)

		r := validRequest()
		r.Date = "15/09/2026"
		_, err := svc.Create(context.Background(), 7, r)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Message, "date format")

		r = validRequest()
		r.StartTime = "9:00"
		_, err = svc.Create(context.Background(), 7, r)
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Message, "time format")
	})

	t.Run("past date", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)

		r := validRequest()
		r.Date = "2026-09-13"

		_, err := svc.Create(context.Background(), 7, r)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Message, "past dates")
	})

	t.Run("start must precede end", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)

		r := validRequest()
		r.StartTime = "12:00"
		r.EndTime = "12:00"

		_, err := svc.Create(context.Background(), 7, r)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Message, "before end time")
	})

	t.Run("duration bounds", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)

		tests := []struct {
			start, end string
			ok         bool
		}{
			{"10:00", "10:29", false}, // 29 minutes
			{"10:00", "10:30", true},  // exactly the minimum
			{"08:00", "16:00", true},  // exactly the maximum
			{"08:00", "16:01", false}, // 481 minutes
		}

		for _, tt := range tests {
			r := validRequest()
			r.Date = "2026-09-16"
			r.StartTime = tt.start
			r.EndTime = tt.end

			_, err := svc.Create(context.Background(), 7, r)
			if tt.ok {
				assert.NoError(t, err, "%s-%s", tt.start, tt.end)
			} else {
				var vErr *ValidationError
				assert.ErrorAs(t, err, &vErr, "%s-%s", tt.start, tt.end)
			}
		}
	})

	t.Run("lead time boundary", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)

		// Now is 2026-09-14 09:00. A slot starting 08:59 the next day is
		// one minute short of the required notice.
		r := validRequest()
		r.StartTime = "08:59"
		r.EndTime = "10:00"

		_, err := svc.Create(context.Background(), 7, r)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Message, "24 hours")

		// Starting exactly 24 hours out is allowed.
		r.StartTime = "09:00"
		_, err = svc.Create(context.Background(), 7, r)
		require.NoError(t, err)
	})

	t.Run("conflict with an approved reservation", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)

		repo.seed(domain.Reservation{
			TeacherID:    3,
			LaboratoryID: 1,
			Date:         "2026-09-15",
			StartTime:    "11:00",
			EndTime:      "13:00",
			State:        domain.ReservationApproved,
		})

		_, err := svc.Create(context.Background(), 7, validRequest())
		require.ErrorIs(t, err, ErrReservationConflict)
	})

	t.Run("pending overlap does not block creation", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)

		repo.seed(domain.Reservation{
			TeacherID:    3,
			LaboratoryID: 1,
			Date:         "2026-09-15",
			StartTime:    "11:00",
			EndTime:      "13:00",
			State:        domain.ReservationPending,
		})

		_, err := svc.Create(context.Background(), 7, validRequest())
		require.NoError(t, err)
	})
}

func TestReservationService_Approve(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)

		seeded := repo.seed(domain.Reservation{
			TeacherID:    7,
			LaboratoryID: 1,
			Date:         "2026-09-15",
			StartTime:    "10:00",
			EndTime:      "12:00",
			State:        domain.ReservationPending,
		})

		approved, err := svc.Approve(context.Background(), 1, seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ReservationApproved, approved.State)
		require.NotNil(t, approved.ApprovedBy)
		assert.Equal(t, uint(1), *approved.ApprovedBy)
		assert.NotNil(t, approved.ApprovedAt)
	})

	t.Run("not found", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)

		_, err := svc.Approve(context.Background(), 1, 42)
		require.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("already decided", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)

		seeded := repo.seed(domain.Reservation{
			TeacherID: 7, LaboratoryID: 1,
			Date: "2026-09-15", StartTime: "10:00", EndTime: "12:00",
			State: domain.ReservationRejected,
		})

		_, err := svc.Approve(context.Background(), 1, seeded.ID)
		var stateErr *InvalidStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, domain.ReservationRejected, stateErr.State)
	})

	t.Run("overlapping approved reservation wins", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)

		repo.seed(domain.Reservation{
			TeacherID: 3, LaboratoryID: 1,
			Date: "2026-09-15", StartTime: "11:00", EndTime: "13:00",
			State: domain.ReservationApproved,
		})
		pending := repo.seed(domain.Reservation{
			TeacherID: 7, LaboratoryID: 1,
			Date: "2026-09-15", StartTime: "10:00", EndTime: "12:00",
			State: domain.ReservationPending,
		})

		_, err := svc.Approve(context.Background(), 1, pending.ID)
		require.ErrorIs(t, err, ErrReservationConflict)

		// The losing request is still pending, not silently mutated.
		current, _ := repo.FindByID(context.Background(), pending.ID)
		assert.Equal(t, domain.ReservationPending, current.State)
	})

	t.Run("lost decision race", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)

		seeded := repo.seed(domain.Reservation{
			TeacherID: 7, LaboratoryID: 1,
			Date: "2026-09-15", StartTime: "10:00", EndTime: "12:00",
			State: domain.ReservationPending,
		})

		// A concurrent admin rejects between the read and the update.
		repo.beforeTransition = func() {
			r := repo.byID[seeded.ID]
			r.State = domain.ReservationRejected
			repo.byID[seeded.ID] = r
		}

		_, err := svc.Approve(context.Background(), 1, seeded.ID)
		var stateErr *InvalidStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, domain.ReservationRejected, stateErr.State)
	})
}

func TestReservationService_Reject(t *testing.T) {
	t.Run("requires a reason", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)

		_, err := svc.Reject(context.Background(), 1, 1, "   ")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("happy path stores the reason", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)

		seeded := repo.seed(domain.Reservation{
			TeacherID: 7, LaboratoryID: 1,
			Date: "2026-09-15", StartTime: "10:00", EndTime: "12:00",
			State: domain.ReservationPending,
		})

		rejected, err := svc.Reject(context.Background(), 1, seeded.ID, "equipment maintenance scheduled")
		require.NoError(t, err)
		assert.Equal(t, domain.ReservationRejected, rejected.State)
		assert.Equal(t, "equipment maintenance scheduled", rejected.RejectionReason)
	})
}

func TestReservationService_Cancel(t *testing.T) {
	seedPending := func(repo *fakeReservationRepo, state domain.ReservationState) domain.Reservation {
		return repo.seed(domain.Reservation{
			TeacherID: 7, LaboratoryID: 1,
			Date: "2026-09-15", StartTime: "10:00", EndTime: "12:00",
			State: state,
		})
	}

	t.Run("owner cancels a pending reservation", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)
		seeded := seedPending(repo, domain.ReservationPending)

		cancelled, err := svc.Cancel(context.Background(), 7, seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ReservationCancelled, cancelled.State)
	})

	t.Run("non-owner gets not found", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc, _ := newTestReservationService(repo)
		seeded := seedPending(repo, domain.ReservationPending)

		_, err := svc.Cancel(context.Background(), 8, seeded.ID)
		require.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("terminal states cannot be cancelled", func(t *testing.T) {
		tests := []struct {
			state   domain.ReservationState
			message string
		}{
			{domain.ReservationCancelled, "already cancelled"},
			{domain.ReservationApproved, "contact the administrator"},
			{domain.ReservationRejected, "cannot be cancelled"},
		}

		for _, tt := range tests {
			repo := newFakeReservationRepo()
			svc, _ := newTestReservationService(repo)
			seeded := seedPending(repo, tt.state)

			_, err := svc.Cancel(context.Background(), 7, seeded.ID)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr, string(tt.state))
			assert.Contains(t, vErr.Message, tt.message)
		}
	})
}

func TestReservationService_List(t *testing.T) {
	repo := newFakeReservationRepo()
	svc, _ := newTestReservationService(repo)

	mine := repo.seed(domain.Reservation{TeacherID: 7, LaboratoryID: 1, Date: "2026-09-15", StartTime: "10:00", EndTime: "12:00", State: domain.ReservationPending})
	others := repo.seed(domain.Reservation{TeacherID: 3, LaboratoryID: 1, Date: "2026-09-16", StartTime: "10:00", EndTime: "12:00", State: domain.ReservationApproved})

	t.Run("admin sees everything", func(t *testing.T) {
		rs, err := svc.List(context.Background(), domain.User{ID: 1, Role: domain.RoleAdmin})
		require.NoError(t, err)
		assert.Len(t, rs, 2)
	})

	t.Run("teacher sees only own rows", func(t *testing.T) {
		rs, err := svc.List(context.Background(), domain.User{ID: 7, Role: domain.RoleTeacher})
		require.NoError(t, err)
		require.Len(t, rs, 1)
		assert.Equal(t, mine.ID, rs[0].ID)
	})

	t.Run("auxiliary sees approved only", func(t *testing.T) {
		rs, err := svc.List(context.Background(), domain.User{ID: 5, Role: domain.RoleAuxiliary})
		require.NoError(t, err)
		require.Len(t, rs, 1)
		assert.Equal(t, others.ID, rs[0].ID)
	})
}

func TestReservationService_Get(t *testing.T) {
	repo := newFakeReservationRepo()
	svc, assignments := newTestReservationService(repo)

	approved := repo.seed(domain.Reservation{TeacherID: 7, LaboratoryID: 1, Date: "2026-09-15", StartTime: "10:00", EndTime: "12:00", State: domain.ReservationApproved})
	pending := repo.seed(domain.Reservation{TeacherID: 7, LaboratoryID: 1, Date: "2026-09-16", StartTime: "10:00", EndTime: "12:00", State: domain.ReservationPending})

	t.Run("teacher cannot read another teacher's reservation", func(t *testing.T) {
		_, err := svc.Get(context.Background(), domain.User{ID: 8, Role: domain.RoleTeacher}, approved.ID)
		require.ErrorIs(t, err, ErrReservationAccessDenied)
	})

	t.Run("owner reads own reservation", func(t *testing.T) {
		got, err := svc.Get(context.Background(), domain.User{ID: 7, Role: domain.RoleTeacher}, approved.ID)
		require.NoError(t, err)
		assert.Equal(t, approved.ID, got.ID)
	})

	t.Run("auxiliary needs approval and assignment", func(t *testing.T) {
		auxiliary := domain.User{ID: 5, Role: domain.RoleAuxiliary}

		_, err := svc.Get(context.Background(), auxiliary, approved.ID)
		require.ErrorIs(t, err, ErrReservationAccessDenied)

		assignments.pairs["5-1"] = true

		got, err := svc.Get(context.Background(), auxiliary, approved.ID)
		require.NoError(t, err)
		assert.Equal(t, approved.ID, got.ID)

		_, err = svc.Get(context.Background(), auxiliary, pending.ID)
		require.ErrorIs(t, err, ErrReservationAccessDenied)
	})
}
