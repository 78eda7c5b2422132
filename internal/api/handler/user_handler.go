package handler

import (
	"net/http"
	"strconv"

	"moviehub/internal/api/dto"
	"moviehub/internal/api/models"
	"moviehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
	authService service.AuthService
}

func NewUserHandler(userService service.UserService, authService service.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// RegisterRoutes registers the account routes. The credential endpoints sit
// behind the rate limiter, /me behind token auth.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, authMW, rateMW gin.HandlerFunc) {
	users := rg.Group("/user")
	{
		users.POST("/create", rateMW, h.Create)
		users.POST("/token", rateMW, h.Token)
		users.GET("/me", authMW, h.Me)
		users.PATCH("/me", authMW, h.UpdateMe)
	}
}

// Create registers a new user
// POST /api/user/create
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(user))
}

// Token issues the user's bearer token
// POST /api/user/token
func (h *UserHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.IssueToken(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Me returns the authenticated user's profile
// GET /api/user/me
func (h *UserHandler) Me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToMeResponse(user))
}

// UpdateMe updates name and/or password for the caller only
// PATCH /api/user/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.userService.UpdateProfile(c.Request.Context(), user.ID, req.Name, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToMeResponse(updated))
}

// currentUser reads the user set by AuthMiddleware.
func currentUser(c *gin.Context) *models.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func atoiQuery(c *gin.Context, key string) (int, error) {
	return strconv.Atoi(c.Query(key))
}
