package handlers

import (
	"net/http"

	"slotbook/models"
	"slotbook/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the /api/bookings endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

type userQuery struct {
	UserID string `form:"user_id" binding:"required"`
}

type userDateQuery struct {
	UserID string `form:"user_id" binding:"required"`
	Date   string `form:"date" binding:"required"`
}

type appointmentsQuery struct {
	UserID string `form:"user_id" binding:"required"`
	Date   string `form:"date"`
}

// CreateUser registers a user's weekly availability.
func (h *BookingHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := h.Service.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User created successfully",
		"user_id": profile.UserID,
	})
}

func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	var q userDateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	slots, err := h.Service.AvailableSlots(c.Request.Context(), q.UserID, q.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available_slots": slots})
}

func (h *BookingHandler) AvailableWeekdays(c *gin.Context) {
	var q userQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	days, err := h.Service.AvailableWeekdays(c.Request.Context(), q.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available_weekdays": days})
}

// BookAppointment reserves one slot; failures carry the validator's reason.
func (h *BookingHandler) BookAppointment(c *gin.Context) {
	var req models.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.Service.BookAppointment(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}

	getLogger(c).Info("appointment booked", zap.String("userID", req.UserID), zap.String("date", req.Date), zap.String("time", req.Time))
	c.JSON(http.StatusOK, gin.H{"message": "Appointment booked successfully"})
}

func (h *BookingHandler) ListAppointments(c *gin.Context) {
	var q appointmentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	appointments, err := h.Service.ListAppointments(c.Request.Context(), q.UserID, q.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

func (h *BookingHandler) BlockDates(c *gin.Context) {
	var req models.UnavailableDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.Service.BlockDates(c.Request.Context(), req.UserID, req.Dates); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dates blocked successfully", "user_id": req.UserID})
}

func (h *BookingHandler) UnblockDates(c *gin.Context) {
	var req models.UnavailableDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.Service.UnblockDates(c.Request.Context(), req.UserID, req.Dates); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dates unblocked successfully", "user_id": req.UserID})
}
