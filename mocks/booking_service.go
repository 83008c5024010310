package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"slotbook/models"
)

type BookingService struct {
	mock.Mock
}

func (s *BookingService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.UserProfile, error) {
	args := s.Called(req)
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (s *BookingService) BookAppointment(ctx context.Context, req models.AppointmentRequest) error {
	args := s.Called(req)
	return args.Error(0)
}

func (s *BookingService) BlockDates(ctx context.Context, userID string, dates []string) error {
	args := s.Called(userID, dates)
	return args.Error(0)
}

func (s *BookingService) UnblockDates(ctx context.Context, userID string, dates []string) error {
	args := s.Called(userID, dates)
	return args.Error(0)
}

func (s *BookingService) AvailableWeekdays(ctx context.Context, userID string) ([]string, error) {
	args := s.Called(userID)
	return args.Get(0).([]string), args.Error(1)
}

func (s *BookingService) AvailableSlots(ctx context.Context, userID, date string) ([]string, error) {
	args := s.Called(userID, date)
	return args.Get(0).([]string), args.Error(1)
}

func (s *BookingService) ListAppointments(ctx context.Context, userID, date string) ([]models.Appointment, error) {
	args := s.Called(userID, date)
	return args.Get(0).([]models.Appointment), args.Error(1)
}
