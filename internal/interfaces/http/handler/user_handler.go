package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appaccount "github.com/BolivianProgrammer/RazorPedidos/internal/application/account"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/account"
)

type UserHandler struct {
	svc *appaccount.Service
}

func NewUserHandler(svc *appaccount.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// userView strips the password hash from API responses.
type userView struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      account.Role `json:"role"`
	CreatedAt string       `json:"created_at"`
}

func toUserView(u *account.User) userView {
	return userView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	users, err := h.svc.List(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]userView, 0, len(users))
	for i := range users {
		views = append(views, toUserView(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": views})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	u, err := h.svc.Get(c.Request.Context(), principal, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserView(u))
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	var in appaccount.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.svc.Create(c.Request.Context(), principal, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserView(u))
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in appaccount.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.svc.Update(c.Request.Context(), principal, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserView(u))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), principal, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
