package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/config"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/domain"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/json_types"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/ports/in"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/ports/out"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/utils"
)

type VisitController struct {
	useCase in.VisitSchedulerUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewVisitController(useCase in.VisitSchedulerUseCase, cfg *config.Config, logger out.LoggerPort) *VisitController {
	return &VisitController{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}
}

func (c *VisitController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(basicAuth(c.cfg))
	{
		api.GET("/sellers/:sellerId/slots", c.availableSlots)
		api.GET("/sellers/:sellerId/slots/range", c.availableSlotsRange)
		api.POST("/appointments", c.createAppointment)
		api.POST("/appointments/:id/confirm", c.transitionHandler(domain.AppointmentStatusConfirmed))
		api.POST("/appointments/:id/checkin", c.transitionHandler(domain.AppointmentStatusInProgress))
		api.POST("/appointments/:id/complete", c.transitionHandler(domain.AppointmentStatusCompleted))
		api.POST("/appointments/:id/cancel", c.cancelAppointment)
	}
}

type CreateAppointmentRequest struct {
	VehicleID uuid.UUID `json:"vehicleId" binding:"required"`
	BuyerID   string    `json:"buyerId" binding:"required"`
	SellerID  string    `json:"sellerId" binding:"required"`
	Date      string    `json:"date" binding:"required,datekey"`
	Time      string    `json:"time" binding:"required,clocktime"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (c *VisitController) availableSlots(ctx *gin.Context) {
	sellerID := ctx.Param("sellerId")

	date, err := utils.ParseDateKey(ctx.Query("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	slots, err := c.useCase.AvailableSlots(ctx.Request.Context(), sellerID, date)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"sellerId": sellerID,
		"date":     utils.DateKey(date),
		"slots":    slotStrings(slots),
	})
}

func (c *VisitController) availableSlotsRange(ctx *gin.Context) {
	sellerID := ctx.Param("sellerId")

	startDate, err := utils.ParseDateKey(ctx.Query("start"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date format, expected YYYY-MM-DD"})
		return
	}

	endDate, err := utils.ParseDateKey(ctx.Query("end"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date format, expected YYYY-MM-DD"})
		return
	}

	result, err := c.useCase.AvailableSlotsRange(ctx.Request.Context(), sellerID, startDate, endDate)
	if err != nil {
		var invalidDate *utils.InvalidDateError
		if errors.As(err, &invalidDate) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	days := make(map[string][]string, len(result))
	for key, slots := range result {
		days[key] = slotStrings(slots)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"sellerId": sellerID,
		"days":     days,
	})
}

func (c *VisitController) createAppointment(ctx *gin.Context) {
	var req CreateAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := utils.ParseDateKey(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	slot, err := json_types.ParseClockTime(req.Time)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time format, expected HH:MM"})
		return
	}

	appointment, err := c.useCase.CreateAppointment(ctx.Request.Context(), req.VehicleID, req.BuyerID, req.SellerID, date, slot)
	if err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "Slot is no longer available, pick another"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, appointment)
}

func (c *VisitController) transitionHandler(to domain.AppointmentStatus) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		c.transition(ctx, to, "")
	}
}

func (c *VisitController) cancelAppointment(ctx *gin.Context) {
	var req CancelAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.transition(ctx, domain.AppointmentStatusCancelled, req.Reason)
}

func (c *VisitController) transition(ctx *gin.Context, to domain.AppointmentStatus, reason string) {
	appointmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID format"})
		return
	}

	appointment, err := c.useCase.TransitionAppointment(ctx.Request.Context(), appointmentID, to, reason)
	if err != nil {
		var invalidTransition *domain.InvalidTransitionError
		if errors.As(err, &invalidTransition) || errors.Is(err, domain.ErrMissingReason) {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, appointment)
}

func slotStrings(slots []json_types.ClockTime) []string {
	result := make([]string, 0, len(slots))
	for _, slot := range slots {
		result = append(result, slot.String())
	}
	return result
}
