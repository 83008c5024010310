package booking

import (
	"slotbook/models"

	"github.com/cockroachdb/errors"
)

// BookingState names a step of the booking pipeline.
type BookingState string

const (
	StateCheckUser             BookingState = "CHECK_USER"
	StateCheckDateFormat       BookingState = "CHECK_DATE_FORMAT"
	StateCheckWeekdayAvailable BookingState = "CHECK_WEEKDAY_AVAILABLE"
	StateCheckBlockedDate      BookingState = "CHECK_BLOCKED_DATE"
	StateCheckSlotValid        BookingState = "CHECK_SLOT_VALID"
	StateCheckNotDoubleBooked  BookingState = "CHECK_NOT_DOUBLE_BOOKED"
	StateCommit                BookingState = "COMMIT"
)

// bookingAttempt carries what earlier checks resolved to the later ones.
type bookingAttempt struct {
	profile *models.UserProfile
	req     models.AppointmentRequest
	window  models.DayAvailability
}

type bookingCheck struct {
	state BookingState
	run   func(a *bookingAttempt) error
}

// bookingChecks run in order; the first failure is terminal.
var bookingChecks = []bookingCheck{
	{StateCheckUser, func(a *bookingAttempt) error {
		if a.profile == nil {
			return ErrUserNotFound
		}
		return nil
	}},
	{StateCheckDateFormat, func(a *bookingAttempt) error {
		weekday, ok := parseDate(a.req.Date)
		if !ok {
			return ErrInvalidDate
		}
		a.window = a.profile.Availability[weekday]
		return nil
	}},
	{StateCheckWeekdayAvailable, func(a *bookingAttempt) error {
		if !a.window.IsAvailable {
			return ErrDayUnavailable
		}
		return nil
	}},
	{StateCheckBlockedDate, func(a *bookingAttempt) error {
		if a.profile.IsDateBlocked(a.req.Date) {
			return ErrDateBlocked
		}
		return nil
	}},
	{StateCheckSlotValid, func(a *bookingAttempt) error {
		slots, err := GenerateTimeSlots(a.window.StartTime, a.window.EndTime, a.profile.SlotDurationMinutes)
		if err != nil {
			return errors.Wrapf(err, "stored availability for %s is malformed", a.profile.UserID)
		}
		for _, s := range slots {
			if s == a.req.Time {
				return nil
			}
		}
		return ErrInvalidSlot
	}},
	{StateCheckNotDoubleBooked, func(a *bookingAttempt) error {
		if _, taken := a.profile.BookedTimes(a.req.Date)[a.req.Time]; taken {
			return ErrSlotBooked
		}
		return nil
	}},
}

// ValidateBooking runs every check that precedes COMMIT against profile,
// which is nil when the user does not exist. Booking errors come back tagged
// with the state that rejected them.
func ValidateBooking(profile *models.UserProfile, req models.AppointmentRequest) error {
	attempt := &bookingAttempt{profile: profile, req: req}
	for _, c := range bookingChecks {
		if err := c.run(attempt); err != nil {
			if be, ok := AsError(err); ok {
				tagged := *be
				tagged.State = c.state
				return &tagged
			}
			return err
		}
	}
	return nil
}
