package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	bk "github.com/upostnikova0/java-shareit/booking"
)

type BookingService interface {
	Create(ctx context.Context, userID int64, req bk.CreateRequest) (bk.Booking, error)
	UpdateStatus(ctx context.Context, userID, bookingID int64, approve bool) (bk.Booking, error)
	GetByID(ctx context.Context, userID, bookingID int64) (bk.Booking, error)
	ListByBooker(ctx context.Context, userID int64, state bk.State, from, size int) ([]bk.Booking, error)
	ListByOwner(ctx context.Context, userID int64, state bk.State, from, size int) ([]bk.Booking, error)
}

type BookingHandler struct {
	service BookingService
}

func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.PATCH("/:id", h.UpdateStatus)
	rg.GET("/owner", h.ListByOwner)
	rg.GET("/:id", h.GetByID)
	rg.GET("", h.ListByBooker)
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req bk.CreateRequest

	if err := c.BindJSON(&req); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse JSON body"})
		return
	}

	booking, err := h.service.Create(c.Request.Context(), sharerID(c), req)

	if err != nil {
		handleError(c, err, "failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid approved parameter"})
		return
	}

	booking, err := h.service.UpdateStatus(c.Request.Context(), sharerID(c), id, approved)

	if err != nil {
		handleError(c, err, "failed to update booking status")
		return
	}

	c.IndentedJSON(http.StatusOK, booking)
}

func (h *BookingHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	booking, err := h.service.GetByID(c.Request.Context(), sharerID(c), id)

	if err != nil {
		handleError(c, err, "failed to fetch booking")
		return
	}

	c.IndentedJSON(http.StatusOK, booking)
}

func (h *BookingHandler) ListByBooker(c *gin.Context) {
	h.list(c, h.service.ListByBooker)
}

func (h *BookingHandler) ListByOwner(c *gin.Context) {
	h.list(c, h.service.ListByOwner)
}

func (h *BookingHandler) list(c *gin.Context, query func(ctx context.Context, userID int64, state bk.State, from, size int) ([]bk.Booking, error)) {
	state, err := bk.ParseState(c.DefaultQuery("state", "ALL"))

	if err != nil {
		handleError(c, err, "failed to list bookings")
		return
	}

	from, size, ok := pagingParams(c)

	if !ok {
		return
	}

	bookings, err := query(c.Request.Context(), sharerID(c), state, from, size)

	if err != nil {
		handleError(c, err, "failed to list bookings")
		return
	}

	c.IndentedJSON(http.StatusOK, bookings)
}
