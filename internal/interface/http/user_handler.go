package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-auth-service/internal/application"
	"github.com/oksasatya/user-auth-service/internal/domain/entity"
	"github.com/oksasatya/user-auth-service/pkg/response"
	"github.com/oksasatya/user-auth-service/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"omitempty,max=100"`
	Phone    string `json:"phone" binding:"omitempty,max=32"`
	Address  string `json:"address" binding:"omitempty,max=200"`
	Age      int    `json:"age" binding:"omitempty,gte=0,lte=150"`
}

type updateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,pwd"`
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=32"`
	Address  *string `json:"address" binding:"omitempty,max=200"`
	Age      *int    `json:"age" binding:"omitempty,gte=0,lte=150"`
}

type searchQuery struct {
	Q    string `json:"q" form:"q" binding:"required,max=100"`
	Size int    `json:"size" form:"size" binding:"omitempty,gte=1,lte=50"`
}

func views(users []*entity.User) []entity.UserView {
	out := make([]entity.UserView, 0, len(users))
	for _, u := range users {
		out = append(out, u.View())
	}
	return out
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		Age:      req.Age,
	})
	if err != nil {
		writeServiceError(c, h.Logger, err, "")
		return
	}
	response.Success(c, http.StatusCreated, u.View(), "user created", nil)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.Logger, err, "there are no users")
		return
	}
	response.Success(c, http.StatusOK, views(users), "users", gin.H{"count": len(users)})
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Logger, err, "")
		return
	}
	response.Success(c, http.StatusOK, u.View(), "user", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), c.Param("id"), application.UpdateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		Age:      req.Age,
	})
	if err != nil {
		writeServiceError(c, h.Logger, err, "user not found or no changes made")
		return
	}
	response.Success(c, http.StatusOK, u.View(), "user updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, h.Logger, err, "")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true}, "user removed", nil)
}

func (h *UserHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	hits, err := h.Svc.Search(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		writeServiceError(c, h.Logger, err, "")
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}
