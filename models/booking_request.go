package models

// CreateUserRequest is the payload of POST /api/bookings/create-appointment.
type CreateUserRequest struct {
	UserID              string                     `json:"user_id" binding:"required"`
	Availability        map[string]DayAvailability `json:"availability" binding:"required"`
	SlotDurationMinutes int                        `json:"slot_duration_minutes" binding:"required,gt=0"`
}

// AppointmentRequest is the payload of POST /api/bookings/book-appointment.
type AppointmentRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // "YYYY-MM-DD"
	Time        string `json:"time" binding:"required"` // "HH:MM"
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// UnavailableDatesRequest adds or removes blocked dates for a user.
type UnavailableDatesRequest struct {
	UserID string   `json:"user_id" binding:"required"`
	Dates  []string `json:"dates" binding:"required,min=1"`
}
