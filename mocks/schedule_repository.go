package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"slotbook/models"
)

type ScheduleRepository struct {
	mock.Mock
}

func (r *ScheduleRepository) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	args := r.Called(userID)
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (r *ScheduleRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	args := r.Called(profile)
	return args.Error(0)
}

func (r *ScheduleRepository) PushAppointment(ctx context.Context, userID string, appt models.Appointment) error {
	args := r.Called(userID, appt)
	return args.Error(0)
}

func (r *ScheduleRepository) AddUnavailableDates(ctx context.Context, userID string, dates []string) error {
	args := r.Called(userID, dates)
	return args.Error(0)
}

func (r *ScheduleRepository) RemoveUnavailableDates(ctx context.Context, userID string, dates []string) error {
	args := r.Called(userID, dates)
	return args.Error(0)
}

func (r *ScheduleRepository) EnsureIndexes(ctx context.Context) error {
	args := r.Called()
	return args.Error(0)
}
