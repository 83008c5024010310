package models

import "time"

// DayAvailability is the weekly template entry for one weekday.
type DayAvailability struct {
	IsAvailable bool   `bson:"is_available" json:"is_available"`
	StartTime   string `bson:"start_time" json:"start_time"` // "HH:MM"
	EndTime     string `bson:"end_time" json:"end_time"`     // "HH:MM"
}

// UserProfile is the single document kept per bookable user.
type UserProfile struct {
	UserID       string                     `bson:"user_id" json:"user_id"`
	Availability map[string]DayAvailability `bson:"availability" json:"availability"`
	// Stored under "slot" so documents written by the previous service stay readable.
	SlotDurationMinutes int           `bson:"slot" json:"slot_duration_minutes"`
	Appointments        []Appointment `bson:"appointments" json:"appointments"`
	UnavailableDates    []string      `bson:"unavailable_dates,omitempty" json:"unavailable_dates,omitempty"`
	CreatedAt           time.Time     `bson:"created_at,omitempty" json:"created_at,omitzero"`
}

// IsDateBlocked reports whether date is in the profile's blocked-dates list.
func (p *UserProfile) IsDateBlocked(date string) bool {
	for _, d := range p.UnavailableDates {
		if d == date {
			return true
		}
	}
	return false
}

// BookedTimes returns the appointment times already taken on date.
func (p *UserProfile) BookedTimes(date string) map[string]struct{} {
	booked := make(map[string]struct{})
	for _, a := range p.Appointments {
		if a.Date == date {
			booked[a.Time] = struct{}{}
		}
	}
	return booked
}

// Appointment is a committed reservation embedded in a UserProfile.
type Appointment struct {
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	PhoneNumber string    `bson:"phone_number" json:"phone_number"`
	Date        string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time        string    `bson:"time" json:"time"` // "HH:MM"
	BookedAt    time.Time `bson:"booked_at,omitempty" json:"booked_at,omitzero"`
}
