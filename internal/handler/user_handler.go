package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/elomAglan/Gestion-de-vente/internal/middleware"
	"github.com/elomAglan/Gestion-de-vente/internal/model"
	"github.com/elomAglan/Gestion-de-vente/pkg/logger"
)

// UserHandler handles user listing, profile and role administration
type UserHandler struct {
	db *gorm.DB
}

// NewUserHandler creates a user handler with its dependencies
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// userSummary is the listing shape exposed to the dashboard
type userSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ListUsers handles retrieving all users
func (h *UserHandler) ListUsers(c echo.Context) error {
	log := logger.FromContext(c)

	var users []userSummary
	result := h.db.Model(&model.User{}).
		Select("id", "username", "email", "role").
		Find(&users)
	if result.Error != nil {
		log.Error("Failed to list users", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve users",
		})
	}

	log.Info("Users retrieved successfully", zap.Int("count", len(users)))
	return c.JSON(http.StatusOK, users)
}

// Profile returns the authenticated user's own profile
func (h *UserHandler) Profile(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var user model.User
	result := h.db.Select("id", "username", "email", "profile_picture").First(&user, userID)
	if result.Error != nil {
		log.Error("User not found", zap.Uint("user_id", userID), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":              user.ID,
		"username":        user.Username,
		"email":           user.Email,
		"profile_picture": user.ProfilePicture,
	})
}

// UpdateRole changes a user's role; values outside the fixed enumeration
// are rejected
func (h *UserHandler) UpdateRole(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Role == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role is required"})
	}

	if !model.ValidRole(req.Role) {
		log.Warn("Invalid role requested", zap.String("role", req.Role))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
	}

	var user model.User
	result := h.db.First(&user, id)
	if result.Error != nil {
		log.Error("User not found for role update",
			zap.String("user_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	if user.Role == req.Role {
		return c.JSON(http.StatusOK, echo.Map{"message": "role already assigned"})
	}

	if err := h.db.Model(&user).Update("role", req.Role).Error; err != nil {
		log.Error("Failed to update role",
			zap.String("user_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update role"})
	}

	log.Info("Role updated successfully",
		zap.String("user_id", id),
		zap.String("old_role", user.Role),
		zap.String("new_role", req.Role))
	return c.JSON(http.StatusOK, echo.Map{"message": "role updated successfully"})
}

// DeleteUser removes a user by ID
func (h *UserHandler) DeleteUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting user", zap.String("user_id", id))

	result := h.db.Delete(&model.User{}, id)
	if result.Error != nil {
		log.Error("Failed to delete user",
			zap.String("user_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete user"})
	}

	if result.RowsAffected == 0 {
		log.Warn("User not found for deletion", zap.String("user_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted successfully"})
}
