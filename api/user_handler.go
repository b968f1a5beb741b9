package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/upostnikova0/java-shareit/user"
)

type UserService interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	GetUser(ctx context.Context, id int64) (user.User, error)
	GetAll(ctx context.Context) ([]user.User, error)
	Update(ctx context.Context, id int64, patch user.Patch) (user.User, error)
	Delete(ctx context.Context, id int64) error
}

type UserHandler struct {
	service UserService
}

func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.GetAll)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

type newUser struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var in newUser

	if err := c.BindJSON(&in); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse JSON body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), user.User{Name: in.Name, Email: in.Email})

	if err != nil {
		handleError(c, err, "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), id)

	if err != nil {
		handleError(c, err, "failed to fetch user")
		return
	}

	c.IndentedJSON(http.StatusOK, u)
}

func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.service.GetAll(c.Request.Context())

	if err != nil {
		handleError(c, err, "failed to list users")
		return
	}

	c.IndentedJSON(http.StatusOK, users)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	var patch user.Patch

	if err := c.BindJSON(&patch); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse JSON body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, patch)

	if err != nil {
		handleError(c, err, "failed to update user")
		return
	}

	c.IndentedJSON(http.StatusOK, updated)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")

	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err, "failed to delete user")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"message": "user deleted"})
}
