// File: database/repository/schedule/crud.go
package scheduleRepo

import (
	"context"
	"time"

	"slotbook/models"
	"slotbook/utils"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoScheduleRepo) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBQueryTimeout)
	defer cancel()

	var profile models.UserProfile
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "failed to fetch profile %s", userID)
	}
	return &profile, nil
}

func (r *mongoScheduleRepo) Create(ctx context.Context, profile *models.UserProfile) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBQueryTimeout)
	defer cancel()

	if profile.Appointments == nil {
		profile.Appointments = []models.Appointment{}
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return errors.Wrapf(err, "failed to create profile %s", profile.UserID)
	}
	return nil
}

func (r *mongoScheduleRepo) PushAppointment(ctx context.Context, userID string, appt models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBQueryTimeout)
	defer cancel()

	filter := bson.M{
		"user_id": userID,
		"appointments": bson.M{
			"$not": bson.M{"$elemMatch": bson.M{"date": appt.Date, "time": appt.Time}},
		},
	}
	update := bson.M{"$push": bson.M{"appointments": appt}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return errors.Wrapf(err, "failed to push appointment for %s", userID)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Nothing matched: either the profile is gone or the slot was taken
	// between validation and commit.
	n, err := r.coll.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return errors.Wrapf(err, "failed to re-check profile %s", userID)
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrConflict
}

func (r *mongoScheduleRepo) AddUnavailableDates(ctx context.Context, userID string, dates []string) error {
	update := bson.M{"$addToSet": bson.M{"unavailable_dates": bson.M{"$each": dates}}}
	return r.updateUnavailableDates(ctx, userID, update)
}

func (r *mongoScheduleRepo) RemoveUnavailableDates(ctx context.Context, userID string, dates []string) error {
	update := bson.M{"$pull": bson.M{"unavailable_dates": bson.M{"$in": dates}}}
	return r.updateUnavailableDates(ctx, userID, update)
}

func (r *mongoScheduleRepo) updateUnavailableDates(ctx context.Context, userID string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBQueryTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		return errors.Wrapf(err, "failed to update unavailable dates for %s", userID)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
