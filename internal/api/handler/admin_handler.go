package handler

import (
	"net/http"

	"moviehub/internal/api/dto"
	"moviehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler is the staff-gated user administration surface.
type AdminHandler struct {
	userService service.UserService
}

func NewAdminHandler(userService service.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, staffMW gin.HandlerFunc) {
	admin := rg.Group("/admin", staffMW)
	{
		admin.GET("/users", h.ListUsers)
		admin.POST("/users", h.CreateUser)
	}
}

// ListUsers returns all users with pagination
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := parsePagination(c)

	users, total, err := h.userService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, *dto.FromModelToUserResponse(&users[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"data": resp,
		"pagination": gin.H{
			"page":      page,
			"page_size": pageSize,
			"total":     total,
		},
	})
}

// CreateUser provisions a user with explicit role flags
// POST /api/admin/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.AdminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.CreateWithRoles(
		c.Request.Context(),
		req.Email, req.Password, req.Name,
		req.IsStaff, req.IsSuperuser,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(user))
}
