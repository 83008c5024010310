// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"

	"slotbook/models"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no profile exists for the user id.
	ErrNotFound = errors.New("schedule profile not found")
	// ErrDuplicate is returned when a profile with the same user id exists.
	ErrDuplicate = errors.New("schedule profile already exists")
	// ErrConflict is returned when the conditional append finds the slot taken.
	ErrConflict = errors.New("appointment slot already taken")
)

// ScheduleRepository stores one UserProfile document per user id.
type ScheduleRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
	Create(ctx context.Context, profile *models.UserProfile) error
	// PushAppointment appends appt only if the profile has no appointment
	// with the same date and time.
	PushAppointment(ctx context.Context, userID string, appt models.Appointment) error
	AddUnavailableDates(ctx context.Context, userID string, dates []string) error
	RemoveUnavailableDates(ctx context.Context, userID string, dates []string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a ScheduleRepository on the given collection.
func NewMongoScheduleRepo(db *mongo.Database, collection string) ScheduleRepository {
	return &mongoScheduleRepo{
		coll: db.Collection(collection),
	}
}
