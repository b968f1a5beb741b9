package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/upostnikova0/java-shareit/request"
)

type RequestService interface {
	Create(ctx context.Context, userID int64, in request.NewRequest) (request.ItemRequest, error)
	ListOwn(ctx context.Context, userID int64) ([]request.ItemRequest, error)
	ListAll(ctx context.Context, userID int64, from, size int) ([]request.ItemRequest, error)
	GetByID(ctx context.Context, requestID, userID int64) (request.ItemRequest, error)
}

type RequestHandler struct {
	service RequestService
}

func NewRequestHandler(service RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

func (h *RequestHandler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.ListOwn)
	rg.GET("/all", h.ListAll)
	rg.GET("/:id", h.GetByID)
}

func (h *RequestHandler) Create(c *gin.Context) {
	var in request.NewRequest

	if err := c.BindJSON(&in); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse JSON body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), sharerID(c), in)

	if err != nil {
		handleError(c, err, "failed to create item request")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *RequestHandler) ListOwn(c *gin.Context) {
	requests, err := h.service.ListOwn(c.Request.Context(), sharerID(c))

	if err != nil {
		handleError(c, err, "failed to list item requests")
		return
	}

	c.IndentedJSON(http.StatusOK, requests)
}

func (h *RequestHandler) ListAll(c *gin.Context) {
	from, size, ok := pagingParams(c)

	if !ok {
		return
	}

	requests, err := h.service.ListAll(c.Request.Context(), sharerID(c), from, size)

	if err != nil {
		handleError(c, err, "failed to list item requests")
		return
	}

	c.IndentedJSON(http.StatusOK, requests)
}

func (h *RequestHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	req, err := h.service.GetByID(c.Request.Context(), id, sharerID(c))

	if err != nil {
		handleError(c, err, "failed to fetch item request")
		return
	}

	c.IndentedJSON(http.StatusOK, req)
}
