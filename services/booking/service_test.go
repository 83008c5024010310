package booking

import (
	"context"
	"testing"

	scheduleRepo "slotbook/database/repository/schedule"
	"slotbook/mocks"
	"slotbook/models"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var noProfile = (*models.UserProfile)(nil)

func newTestService(t *testing.T) (*DefaultBookingService, *mocks.ScheduleRepository, *mocks.SlotCache) {
	t.Helper()
	repo := new(mocks.ScheduleRepository)
	cache := new(mocks.SlotCache)
	svc, err := NewDefaultBookingService(repo, cache, zap.NewNop())
	require.NoError(t, err)
	return svc, repo, cache
}

func TestNewDefaultBookingServiceRequiresRepo(t *testing.T) {
	_, err := NewDefaultBookingService(nil, nil, zap.NewNop())
	assert.Error(t, err)

	svc, err := NewDefaultBookingService(new(mocks.ScheduleRepository), nil, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, svc.Cache)
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	req := models.CreateUserRequest{
		UserID: "dr-smith",
		Availability: map[string]models.DayAvailability{
			"Monday": {IsAvailable: true, StartTime: "09:00", EndTime: "12:00"},
			"Sunday": {IsAvailable: false},
		},
		SlotDurationMinutes: 30,
	}

	t.Run("nominal", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("GetByUserID", "dr-smith").Return(noProfile, scheduleRepo.ErrNotFound)
		repo.On("Create", mock.MatchedBy(func(p *models.UserProfile) bool {
			return p.UserID == "dr-smith" && p.SlotDurationMinutes == 30 && len(p.Appointments) == 0
		})).Return(nil)

		profile, err := svc.CreateUser(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "dr-smith", profile.UserID)
		assert.NotNil(t, profile.Appointments)
		repo.AssertExpectations(t)
	})

	t.Run("existing user id", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("GetByUserID", "dr-smith").Return(testProfile(), nil)

		_, err := svc.CreateUser(ctx, req)
		assert.ErrorIs(t, err, ErrUserExists)
		be, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, KindBadRequest, be.Kind)
		repo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("duplicate key on insert", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("GetByUserID", "dr-smith").Return(noProfile, scheduleRepo.ErrNotFound)
		repo.On("Create", mock.Anything).Return(scheduleRepo.ErrDuplicate)

		_, err := svc.CreateUser(ctx, req)
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("store failure is not a booking error", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("GetByUserID", "dr-smith").Return(noProfile, errors.New("connection reset"))

		_, err := svc.CreateUser(ctx, req)
		require.Error(t, err)
		_, ok := AsError(err)
		assert.False(t, ok)
	})

	invalid := []struct {
		name   string
		mutate func(r *models.CreateUserRequest)
	}{
		{"blank user id", func(r *models.CreateUserRequest) { r.UserID = "  " }},
		{"zero duration", func(r *models.CreateUserRequest) { r.SlotDurationMinutes = 0 }},
		{"lowercase weekday", func(r *models.CreateUserRequest) {
			r.Availability = map[string]models.DayAvailability{"monday": {IsAvailable: true, StartTime: "09:00", EndTime: "10:00"}}
		}},
		{"start after end", func(r *models.CreateUserRequest) {
			r.Availability = map[string]models.DayAvailability{"Monday": {IsAvailable: true, StartTime: "12:00", EndTime: "09:00"}}
		}},
		{"malformed clock", func(r *models.CreateUserRequest) {
			r.Availability = map[string]models.DayAvailability{"Monday": {IsAvailable: true, StartTime: "9am", EndTime: "12:00"}}
		}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService(t)
			r := req
			tt.mutate(&r)

			_, err := svc.CreateUser(ctx, r)
			be, ok := AsError(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, KindBadRequest, be.Kind)
			repo.AssertNotCalled(t, "GetByUserID", mock.Anything)
		})
	}
}

func TestAvailableWeekdays(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.On("GetByUserID", "dr-smith").Return(testProfile(), nil)
	repo.On("GetByUserID", "ghost").Return(noProfile, scheduleRepo.ErrNotFound)

	days, err := svc.AvailableWeekdays(context.Background(), "dr-smith")
	require.NoError(t, err)
	assert.Equal(t, []string{"Monday", "Tuesday"}, days)

	_, err = svc.AvailableWeekdays(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrAppointmentIDNotFound)
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, be.Kind)
	assert.Equal(t, "Appointment Id not found", be.Message)
}

func TestAvailableSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("subtracts booked times and caches", func(t *testing.T) {
		svc, repo, cache := newTestService(t)
		expected := []string{"09:00", "10:00", "10:30", "11:00", "11:30"}
		cache.On("Get", "dr-smith", "2025-05-19").Return([]string(nil), false, nil)
		cache.On("Version", "dr-smith", "2025-05-19").Return(int64(3), nil)
		cache.On("Set", "dr-smith", "2025-05-19", int64(3), expected).Return(nil)
		repo.On("GetByUserID", "dr-smith").Return(testProfile(), nil)

		slots, err := svc.AvailableSlots(ctx, "dr-smith", "2025-05-19")
		require.NoError(t, err)
		assert.Equal(t, expected, slots)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		svc, repo, cache := newTestService(t)
		cache.On("Get", "dr-smith", "2025-05-19").Return([]string{"11:30"}, true, nil)

		slots, err := svc.AvailableSlots(ctx, "dr-smith", "2025-05-19")
		require.NoError(t, err)
		assert.Equal(t, []string{"11:30"}, slots)
		repo.AssertNotCalled(t, "GetByUserID", mock.Anything)
	})

	t.Run("cache failure falls back to the store", func(t *testing.T) {
		svc, repo, cache := newTestService(t)
		cache.On("Get", "dr-smith", "2025-05-20").Return([]string(nil), false, errors.New("redis down"))
		cache.On("Version", "dr-smith", "2025-05-20").Return(int64(0), errors.New("redis down"))
		repo.On("GetByUserID", "dr-smith").Return(testProfile(), nil)

		slots, err := svc.AvailableSlots(ctx, "dr-smith", "2025-05-20")
		require.NoError(t, err)
		assert.Equal(t, []string{"13:00", "13:30", "14:00", "14:30"}, slots)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unavailable weekday and blocked date are empty", func(t *testing.T) {
		svc, repo, cache := newTestService(t)
		cache.On("Get", "dr-smith", mock.Anything).Return([]string(nil), false, nil)
		cache.On("Version", "dr-smith", mock.Anything).Return(int64(0), nil)
		cache.On("Set", "dr-smith", mock.Anything, int64(0), []string{}).Return(nil)
		repo.On("GetByUserID", "dr-smith").Return(testProfile(), nil)

		slots, err := svc.AvailableSlots(ctx, "dr-smith", "2025-05-24")
		require.NoError(t, err)
		assert.Empty(t, slots)
		assert.NotNil(t, slots)

		slots, err = svc.AvailableSlots(ctx, "dr-smith", "2025-05-26")
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("missing user before bad date", func(t *testing.T) {
		svc, repo, cache := newTestService(t)
		cache.On("Get", "ghost", "nope").Return([]string(nil), false, nil)
		cache.On("Version", "ghost", "nope").Return(int64(0), nil)
		repo.On("GetByUserID", "ghost").Return(noProfile, scheduleRepo.ErrNotFound)

		_, err := svc.AvailableSlots(ctx, "ghost", "nope")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("bad date", func(t *testing.T) {
		svc, repo, cache := newTestService(t)
		cache.On("Get", "dr-smith", "2025/05/19").Return([]string(nil), false, nil)
		cache.On("Version", "dr-smith", "2025/05/19").Return(int64(0), nil)
		repo.On("GetByUserID", "dr-smith").Return(testProfile(), nil)

		_, err := svc.AvailableSlots(ctx, "dr-smith", "2025/05/19")
		assert.ErrorIs(t, err, ErrInvalidDate)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListAppointments(t *testing.T) {
	svc, repo, _ := newTestService(t)
	profile := testProfile()
	profile.Appointments = []models.Appointment{
		{Name: "C", Date: "2025-05-20", Time: "13:00"},
		{Name: "B", Date: "2025-05-19", Time: "11:00"},
		{Name: "A", Date: "2025-05-19", Time: "09:00"},
	}
	repo.On("GetByUserID", "dr-smith").Return(profile, nil)

	all, err := svc.ListAppointments(context.Background(), "dr-smith", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{all[0].Name, all[1].Name, all[2].Name})

	day, err := svc.ListAppointments(context.Background(), "dr-smith", "2025-05-20")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "C", day[0].Name)

	_, err = svc.ListAppointments(context.Background(), "dr-smith", "May 20")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestBookAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("commits and invalidates the day", func(t *testing.T) {
		svc, repo, cache := newTestService(t)
		repo.On("GetByUserID", "dr-smith").Return(testProfile(), nil)
		repo.On("PushAppointment", "dr-smith", mock.MatchedBy(func(a models.Appointment) bool {
			return a.Date == "2025-05-19" && a.Time == "10:00" && a.Email == "bob@example.com" && !a.BookedAt.IsZero()
		})).Return(nil)
		cache.On("Invalidate", "dr-smith", []string{"2025-05-19"}).Return(nil)

		err := svc.BookAppointment(ctx, appointmentFor("2025-05-19", "10:00"))
		require.NoError(t, err)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("same slot twice conflicts", func(t *testing.T) {
		svc, repo, cache := newTestService(t)
		profile := testProfile()
		repo.On("GetByUserID", "dr-smith").Return(profile, nil)
		repo.On("PushAppointment", "dr-smith", mock.Anything).Run(func(args mock.Arguments) {
			profile.Appointments = append(profile.Appointments, args.Get(1).(models.Appointment))
		}).Return(nil).Once()
		cache.On("Invalidate", "dr-smith", mock.Anything).Return(nil)

		require.NoError(t, svc.BookAppointment(ctx, appointmentFor("2025-05-19", "10:00")))

		err := svc.BookAppointment(ctx, appointmentFor("2025-05-19", "10:00"))
		assert.ErrorIs(t, err, ErrSlotBooked)
		be, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, KindConflict, be.Kind)
		assert.Equal(t, StateCheckNotDoubleBooked, be.State)
		repo.AssertNumberOfCalls(t, "PushAppointment", 1)
	})

	t.Run("race lost at commit conflicts", func(t *testing.T) {
		svc, repo, cache := newTestService(t)
		repo.On("GetByUserID", "dr-smith").Return(testProfile(), nil)
		repo.On("PushAppointment", "dr-smith", mock.Anything).Return(scheduleRepo.ErrConflict)

		err := svc.BookAppointment(ctx, appointmentFor("2025-05-19", "10:00"))
		assert.ErrorIs(t, err, ErrSlotBooked)
		be, _ := AsError(err)
		assert.Equal(t, StateCommit, be.State)
		cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})

	t.Run("validation failures never commit", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("GetByUserID", "dr-smith").Return(testProfile(), nil)
		repo.On("GetByUserID", "ghost").Return(noProfile, scheduleRepo.ErrNotFound)

		ghost := appointmentFor("2025-05-19", "10:00")
		ghost.UserID = "ghost"
		assert.ErrorIs(t, svc.BookAppointment(ctx, ghost), ErrUserNotFound)
		assert.ErrorIs(t, svc.BookAppointment(ctx, appointmentFor("2025-05-19", "10:10")), ErrInvalidSlot)
		assert.ErrorIs(t, svc.BookAppointment(ctx, appointmentFor("2025-05-24", "10:00")), ErrDayUnavailable)
		assert.ErrorIs(t, svc.BookAppointment(ctx, appointmentFor("2025-05-26", "10:00")), ErrDateBlocked)
		repo.AssertNotCalled(t, "PushAppointment", mock.Anything, mock.Anything)
	})
}

func TestBlockAndUnblockDates(t *testing.T) {
	ctx := context.Background()

	t.Run("block dedupes and invalidates", func(t *testing.T) {
		svc, repo, cache := newTestService(t)
		dates := []string{"2025-12-25", "2025-12-26"}
		repo.On("AddUnavailableDates", "dr-smith", dates).Return(nil)
		cache.On("Invalidate", "dr-smith", dates).Return(nil)

		err := svc.BlockDates(ctx, "dr-smith", []string{"2025-12-25", "2025-12-26", "2025-12-25"})
		require.NoError(t, err)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("unblock on missing user", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("RemoveUnavailableDates", "ghost", []string{"2025-12-25"}).Return(scheduleRepo.ErrNotFound)

		err := svc.UnblockDates(ctx, "ghost", []string{"2025-12-25"})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("rejects bad input before touching the store", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		assert.ErrorIs(t, svc.BlockDates(ctx, "dr-smith", []string{"2025-13-01"}), ErrInvalidDate)
		err := svc.BlockDates(ctx, "dr-smith", nil)
		be, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, KindBadRequest, be.Kind)
		repo.AssertNotCalled(t, "AddUnavailableDates", mock.Anything, mock.Anything)
	})
}
