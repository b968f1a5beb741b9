package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/upostnikova0/java-shareit/api"
	mock_api "github.com/upostnikova0/java-shareit/api/mocks"
	"github.com/upostnikova0/java-shareit/user"
	"go.uber.org/mock/gomock"
)

func setupUserRouter(t *testing.T) (*gin.Engine, *gomock.Controller, *mock_api.MockUserService) {
	t.Helper()
	ctrl := gomock.NewController(t)

	gin.SetMode(gin.TestMode)
	router := gin.Default()
	mockService := mock_api.NewMockUserService(ctrl)
	handler := api.NewUserHandler(mockService)
	handler.Register(router.Group("/users"))

	return router, ctrl, mockService
}

var eva = user.User{ID: 7, Name: "eva", Email: "eva@example.com"}

func TestCreateUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, ctrl, mockService := setupUserRouter(t)
		defer ctrl.Finish()

		evaJson, _ := json.Marshal(eva)
		mockService.EXPECT().Create(gomock.Any(), user.User{Name: "eva", Email: "eva@example.com"}).Return(eva, nil).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/users", bytes.NewBufferString(`{"name":"eva","email":"eva@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, 201, w.Code)
		assert.JSONEq(t, string(evaJson), w.Body.String())
	})

	t.Run("invalid email", func(t *testing.T) {
		router, ctrl, _ := setupUserRouter(t)
		defer ctrl.Finish()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/users", bytes.NewBufferString(`{"name":"eva","email":"not-an-email"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, 400, w.Code)
		assert.JSONEq(t, `{"error":"failed to parse JSON body"}`, w.Body.String())
	})

	t.Run("duplicate email", func(t *testing.T) {
		router, ctrl, mockService := setupUserRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Return(user.User{}, user.ErrEmailExists).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/users", bytes.NewBufferString(`{"name":"eva","email":"eva@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, 409, w.Code)
		assert.JSONEq(t, `{"error":"email already in use"}`, w.Body.String())
	})
}

func TestGetUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, ctrl, mockService := setupUserRouter(t)
		defer ctrl.Finish()

		evaJson, _ := json.Marshal(eva)
		mockService.EXPECT().GetUser(gomock.Any(), int64(7)).Return(eva, nil).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/users/7", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, string(evaJson), w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		router, ctrl, mockService := setupUserRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().GetUser(gomock.Any(), int64(7)).Return(user.User{}, user.ErrUserNotFound).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/users/7", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 404, w.Code)
		assert.JSONEq(t, `{"error":"user not found"}`, w.Body.String())
	})

	t.Run("bad id", func(t *testing.T) {
		router, ctrl, _ := setupUserRouter(t)
		defer ctrl.Finish()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/users/abc", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 400, w.Code)
		assert.JSONEq(t, `{"error":"invalid id"}`, w.Body.String())
	})
}

func TestGetAllUsers(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, ctrl, mockService := setupUserRouter(t)
		defer ctrl.Finish()

		users := []user.User{eva}
		usersJson, _ := json.Marshal(users)
		mockService.EXPECT().GetAll(gomock.Any()).Return(users, nil).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/users", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, string(usersJson), w.Body.String())
	})

	t.Run("service error", func(t *testing.T) {
		router, ctrl, mockService := setupUserRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().GetAll(gomock.Any()).Return(nil, assert.AnError).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/users", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 500, w.Code)
		assert.JSONEq(t, `{"error":"failed to list users"}`, w.Body.String())
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, ctrl, mockService := setupUserRouter(t)
		defer ctrl.Finish()

		patched := eva
		patched.Name = "evelyn"
		patchedJson, _ := json.Marshal(patched)
		mockService.EXPECT().Update(gomock.Any(), int64(7), gomock.Any()).Return(patched, nil).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PATCH", "/users/7", bytes.NewBufferString(`{"name":"evelyn"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, string(patchedJson), w.Body.String())
	})

	t.Run("duplicate email", func(t *testing.T) {
		router, ctrl, mockService := setupUserRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().Update(gomock.Any(), int64(7), gomock.Any()).Return(user.User{}, user.ErrEmailExists).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PATCH", "/users/7", bytes.NewBufferString(`{"email":"taken@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, 409, w.Code)
		assert.JSONEq(t, `{"error":"email already in use"}`, w.Body.String())
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, ctrl, mockService := setupUserRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().Delete(gomock.Any(), int64(7)).Return(nil).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/users/7", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, `{"message":"user deleted"}`, w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		router, ctrl, mockService := setupUserRouter(t)
		defer ctrl.Finish()

		mockService.EXPECT().Delete(gomock.Any(), int64(7)).Return(user.ErrUserNotFound).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/users/7", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 404, w.Code)
		assert.JSONEq(t, `{"error":"user not found"}`, w.Body.String())
	})
}
