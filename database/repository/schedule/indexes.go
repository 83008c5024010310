// FILE: database/repository/schedule/indexes.go
package scheduleRepo

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the booking collection relies on.
func (r *mongoScheduleRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// One profile per user.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_user_id"),
		},
		// Supports the (date, time) guard in PushAppointment.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "appointments.date", Value: 1}, {Key: "appointments.time", Value: 1}},
			Options: options.Index().SetName("user_appointment_slot_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return errors.Wrap(err, "failed to create booking indexes")
	}
	return nil
}
