package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/upostnikova0/java-shareit/item"
)

type ItemService interface {
	Create(ctx context.Context, userID int64, in item.NewItem) (item.Item, error)
	GetByID(ctx context.Context, itemID, userID int64) (item.Detail, error)
	ListByOwner(ctx context.Context, userID int64, from, size int) ([]item.Detail, error)
	Update(ctx context.Context, userID, itemID int64, patch item.Patch) (item.Item, error)
	Delete(ctx context.Context, itemID int64) error
	Search(ctx context.Context, text string, from, size int) ([]item.Item, error)
	AddComment(ctx context.Context, userID, itemID int64, text string) (item.Comment, error)
}

type ItemHandler struct {
	service ItemService
}

func NewItemHandler(service ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

func (h *ItemHandler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.ListByOwner)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/comment", h.AddComment)
}

// RegisterPublic mounts the routes that take no sharer header.
func (h *ItemHandler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("/search", h.Search)
}

func (h *ItemHandler) Create(c *gin.Context) {
	var in item.NewItem

	if err := c.BindJSON(&in); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse JSON body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), sharerID(c), in)

	if err != nil {
		handleError(c, err, "failed to create item")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ItemHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	detail, err := h.service.GetByID(c.Request.Context(), id, sharerID(c))

	if err != nil {
		handleError(c, err, "failed to fetch item")
		return
	}

	c.IndentedJSON(http.StatusOK, detail)
}

func (h *ItemHandler) ListByOwner(c *gin.Context) {
	from, size, ok := pagingParams(c)

	if !ok {
		return
	}

	items, err := h.service.ListByOwner(c.Request.Context(), sharerID(c), from, size)

	if err != nil {
		handleError(c, err, "failed to list items")
		return
	}

	c.IndentedJSON(http.StatusOK, items)
}

func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	var patch item.Patch

	if err := c.BindJSON(&patch); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse JSON body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), sharerID(c), id, patch)

	if err != nil {
		handleError(c, err, "failed to update item")
		return
	}

	c.IndentedJSON(http.StatusOK, updated)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err, "failed to delete item")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"message": "item deleted"})
}

func (h *ItemHandler) Search(c *gin.Context) {
	from, size, ok := pagingParams(c)

	if !ok {
		return
	}

	items, err := h.service.Search(c.Request.Context(), c.Query("text"), from, size)

	if err != nil {
		handleError(c, err, "failed to search items")
		return
	}

	c.IndentedJSON(http.StatusOK, items)
}

type commentBody struct {
	Text string `json:"text" binding:"required"`
}

func (h *ItemHandler) AddComment(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	var body commentBody

	if err := c.BindJSON(&body); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse JSON body"})
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), sharerID(c), id, body.Text)

	if err != nil {
		handleError(c, err, "failed to add comment")
		return
	}

	c.JSON(http.StatusCreated, comment)
}
