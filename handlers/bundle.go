// File: handlers/bundle.go
package handlers

import (
	"net/http"

	"slotbook/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Booking endpoints
	CreateUser        gin.HandlerFunc
	AvailableSlots    gin.HandlerFunc
	AvailableWeekdays gin.HandlerFunc
	BookAppointment   gin.HandlerFunc
	ListAppointments  gin.HandlerFunc
	BlockDates        gin.HandlerFunc
	UnblockDates      gin.HandlerFunc

	// Liveness and dependency health
	Root   gin.HandlerFunc
	Health gin.HandlerFunc
}

// NewHandlerBundle wires the booking handler and the health monitor.
func NewHandlerBundle(bh *BookingHandler, monitor *utils.HealthMonitor) *HandlerBundle {
	return &HandlerBundle{
		CreateUser:        bh.CreateUser,
		AvailableSlots:    bh.AvailableSlots,
		AvailableWeekdays: bh.AvailableWeekdays,
		BookAppointment:   bh.BookAppointment,
		ListAppointments:  bh.ListAppointments,
		BlockDates:        bh.BlockDates,
		UnblockDates:      bh.UnblockDates,
		Root:              RootHandler,
		Health:            HealthHandler(monitor),
	}
}

// RootHandler is the liveness probe.
func RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "hello World"})
}

// HealthHandler reports the monitor's last snapshot; 503 when a dependency is down.
func HealthHandler(monitor *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := monitor.Status()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}
