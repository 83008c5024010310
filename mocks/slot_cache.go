package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type SlotCache struct {
	mock.Mock
}

func (c *SlotCache) Get(ctx context.Context, userID, date string) ([]string, bool, error) {
	args := c.Called(userID, date)
	return args.Get(0).([]string), args.Bool(1), args.Error(2)
}

func (c *SlotCache) Version(ctx context.Context, userID, date string) (int64, error) {
	args := c.Called(userID, date)
	return args.Get(0).(int64), args.Error(1)
}

func (c *SlotCache) Set(ctx context.Context, userID, date string, version int64, slots []string) error {
	args := c.Called(userID, date, version, slots)
	return args.Error(0)
}

func (c *SlotCache) Invalidate(ctx context.Context, userID string, dates ...string) error {
	args := c.Called(userID, dates)
	return args.Error(0)
}
