package booking

import (
	"context"
	"sort"
	"strings"
	"time"

	scheduleRepo "slotbook/database/repository/schedule"
	"slotbook/models"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Weekdays lists the accepted availability keys in calendar order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// BookingService exposes the query and mutation operations of the booking API.
type BookingService interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.UserProfile, error)
	BookAppointment(ctx context.Context, req models.AppointmentRequest) error
	BlockDates(ctx context.Context, userID string, dates []string) error
	UnblockDates(ctx context.Context, userID string, dates []string) error

	AvailableWeekdays(ctx context.Context, userID string) ([]string, error)
	AvailableSlots(ctx context.Context, userID, date string) ([]string, error)
	ListAppointments(ctx context.Context, userID, date string) ([]models.Appointment, error)
}

// DefaultBookingService implements BookingService on a ScheduleRepository.
type DefaultBookingService struct {
	Repo   scheduleRepo.ScheduleRepository
	Cache  SlotCache
	Logger *zap.Logger
}

func NewDefaultBookingService(repo scheduleRepo.ScheduleRepository, cache SlotCache, logger *zap.Logger) (*DefaultBookingService, error) {
	if repo == nil || logger == nil {
		return nil, errors.New("booking service initialization error: repository and logger are required")
	}
	if cache == nil {
		cache = NewNoopSlotCache()
	}
	return &DefaultBookingService{
		Repo:   repo,
		Cache:  cache,
		Logger: logger,
	}, nil
}

// loadProfile returns nil, nil when the user does not exist.
func (s *DefaultBookingService) loadProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "load profile")
	}
	return profile, nil
}

func (s *DefaultBookingService) requireProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}
	return profile, nil
}

func (s *DefaultBookingService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.UserProfile, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, invalidInput("user_id is required")
	}
	if req.SlotDurationMinutes <= 0 {
		return nil, invalidInput("slot_duration_minutes must be greater than 0")
	}
	if err := validateAvailability(req.Availability); err != nil {
		return nil, err
	}

	existing, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	profile := &models.UserProfile{
		UserID:              userID,
		Availability:        req.Availability,
		SlotDurationMinutes: req.SlotDurationMinutes,
		Appointments:        []models.Appointment{},
	}
	if err := s.Repo.Create(ctx, profile); err != nil {
		// Lost a race with a concurrent create of the same id.
		if errors.Is(err, scheduleRepo.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, errors.Wrap(err, "create profile")
	}

	s.Logger.Info("booking profile created",
		zap.String("userID", userID),
		zap.Int("slotDurationMinutes", profile.SlotDurationMinutes))
	return profile, nil
}

func validateAvailability(availability map[string]models.DayAvailability) error {
	for day, window := range availability {
		if !isWeekday(day) {
			return invalidInput("unknown weekday %q, expected one of %s", day, strings.Join(Weekdays, ", "))
		}
		if !window.IsAvailable {
			continue
		}
		start, err := parseClock(window.StartTime)
		if err != nil {
			return invalidInput("%s: start_time must be HH:MM", day)
		}
		end, err := parseClock(window.EndTime)
		if err != nil {
			return invalidInput("%s: end_time must be HH:MM", day)
		}
		if start >= end {
			return invalidInput("%s: start_time must be before end_time", day)
		}
	}
	return nil
}

func isWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

func (s *DefaultBookingService) AvailableWeekdays(ctx context.Context, userID string) ([]string, error) {
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrAppointmentIDNotFound
	}

	days := []string{}
	for _, d := range Weekdays {
		if profile.Availability[d].IsAvailable {
			days = append(days, d)
		}
	}
	return days, nil
}

func (s *DefaultBookingService) AvailableSlots(ctx context.Context, userID, date string) ([]string, error) {
	// A cached entry implies the user existed and the date parsed.
	if slots, ok, err := s.Cache.Get(ctx, userID, date); err != nil {
		s.Logger.Warn("slot cache read failed", zap.String("userID", userID), zap.Error(err))
	} else if ok {
		return slots, nil
	}

	// The version must be read before the profile so that a booking committed
	// in between makes the fill below a no-op.
	version, err := s.Cache.Version(ctx, userID, date)
	fill := err == nil
	if err != nil {
		s.Logger.Warn("slot cache version read failed", zap.String("userID", userID), zap.Error(err))
	}

	profile, err := s.requireProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	weekday, ok := parseDate(date)
	if !ok {
		return nil, ErrInvalidDate
	}

	available := []string{}
	window := profile.Availability[weekday]
	// Blocked dates offer nothing, like an unavailable weekday.
	if window.IsAvailable && !profile.IsDateBlocked(date) {
		all, err := GenerateTimeSlots(window.StartTime, window.EndTime, profile.SlotDurationMinutes)
		if err != nil {
			return nil, errors.Wrapf(err, "stored availability for %s is malformed", userID)
		}
		booked := profile.BookedTimes(date)
		for _, slot := range all {
			if _, taken := booked[slot]; !taken {
				available = append(available, slot)
			}
		}
	}

	if fill {
		if err := s.Cache.Set(ctx, userID, date, version, available); err != nil {
			s.Logger.Warn("slot cache write failed", zap.String("userID", userID), zap.Error(err))
		}
	}
	return available, nil
}

func (s *DefaultBookingService) ListAppointments(ctx context.Context, userID, date string) ([]models.Appointment, error) {
	profile, err := s.requireProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if date != "" {
		if _, ok := parseDate(date); !ok {
			return nil, ErrInvalidDate
		}
	}

	appointments := []models.Appointment{}
	for _, a := range profile.Appointments {
		if date == "" || a.Date == date {
			appointments = append(appointments, a)
		}
	}
	sort.SliceStable(appointments, func(i, j int) bool {
		if appointments[i].Date == appointments[j].Date {
			return appointments[i].Time < appointments[j].Time
		}
		return appointments[i].Date < appointments[j].Date
	})
	return appointments, nil
}

func (s *DefaultBookingService) BookAppointment(ctx context.Context, req models.AppointmentRequest) error {
	logger := s.Logger.With(zap.String("userID", req.UserID), zap.String("date", req.Date), zap.String("time", req.Time))

	// Step 1: Load the profile (CHECK_USER runs inside the validator).
	profile, err := s.loadProfile(ctx, req.UserID)
	if err != nil {
		return err
	}

	// Step 2: Validate
	if err := ValidateBooking(profile, req); err != nil {
		logger.Debug("booking rejected", zap.Error(err))
		return err
	}

	// Step 3: Commit. The store re-checks (date, time) atomically.
	appt := models.Appointment{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Date:        req.Date,
		Time:        req.Time,
		BookedAt:    time.Now().UTC(),
	}
	if err := s.Repo.PushAppointment(ctx, req.UserID, appt); err != nil {
		switch {
		case errors.Is(err, scheduleRepo.ErrConflict):
			logger.Info("booking lost race for slot")
			conflict := *ErrSlotBooked
			conflict.State = StateCommit
			return &conflict
		case errors.Is(err, scheduleRepo.ErrNotFound):
			return ErrUserNotFound
		default:
			return errors.Wrap(err, "commit appointment")
		}
	}

	// Step 4: Drop the cached slot list for that day.
	if err := s.Cache.Invalidate(ctx, req.UserID, req.Date); err != nil {
		logger.Warn("slot cache invalidation failed", zap.Error(err))
	}

	logger.Info("appointment booked")
	return nil
}

func (s *DefaultBookingService) BlockDates(ctx context.Context, userID string, dates []string) error {
	normalized, err := normalizeDates(dates)
	if err != nil {
		return err
	}
	if err := s.Repo.AddUnavailableDates(ctx, userID, normalized); err != nil {
		return s.dateUpdateError(err)
	}
	s.afterDateUpdate(ctx, userID, normalized, "dates blocked")
	return nil
}

func (s *DefaultBookingService) UnblockDates(ctx context.Context, userID string, dates []string) error {
	normalized, err := normalizeDates(dates)
	if err != nil {
		return err
	}
	if err := s.Repo.RemoveUnavailableDates(ctx, userID, normalized); err != nil {
		return s.dateUpdateError(err)
	}
	s.afterDateUpdate(ctx, userID, normalized, "dates unblocked")
	return nil
}

func (s *DefaultBookingService) dateUpdateError(err error) error {
	if errors.Is(err, scheduleRepo.ErrNotFound) {
		return ErrUserNotFound
	}
	return errors.Wrap(err, "update unavailable dates")
}

func (s *DefaultBookingService) afterDateUpdate(ctx context.Context, userID string, dates []string, msg string) {
	if err := s.Cache.Invalidate(ctx, userID, dates...); err != nil {
		s.Logger.Warn("slot cache invalidation failed", zap.String("userID", userID), zap.Error(err))
	}
	s.Logger.Info(msg, zap.String("userID", userID), zap.Strings("dates", dates))
}

// normalizeDates validates every date and drops duplicates, keeping order.
func normalizeDates(dates []string) ([]string, error) {
	if len(dates) == 0 {
		return nil, invalidInput("dates must not be empty")
	}
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := parseDate(d); !ok {
			return nil, ErrInvalidDate
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out, nil
}
