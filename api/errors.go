package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	bk "github.com/upostnikova0/java-shareit/booking"
	"github.com/upostnikova0/java-shareit/item"
	"github.com/upostnikova0/java-shareit/pagination"
	"github.com/upostnikova0/java-shareit/request"
	"github.com/upostnikova0/java-shareit/user"
)

// handleError maps the domain sentinels onto HTTP statuses. Authorization
// failures arrive here already shaped as not-found errors.
func handleError(c *gin.Context, err error, fallback string) {
	c.Error(err)

	switch {
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, item.ErrItemNotFound),
		errors.Is(err, item.ErrRequestNotFound),
		errors.Is(err, bk.ErrBookingNotFound),
		errors.Is(err, request.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, bk.ErrItemUnavailable),
		errors.Is(err, bk.ErrInvalidDateRange),
		errors.Is(err, bk.ErrAlreadyDecided),
		errors.Is(err, bk.ErrUnsupportedState),
		errors.Is(err, item.ErrRentalNotCompleted),
		errors.Is(err, item.ErrEmptyComment),
		errors.Is(err, pagination.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}

	return id, true
}

func pagingParams(c *gin.Context) (from, size int, ok bool) {
	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from parameter"})
		return 0, 0, false
	}

	size, err = strconv.Atoi(c.DefaultQuery("size", "10"))

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid size parameter"})
		return 0, 0, false
	}

	return from, size, true
}
