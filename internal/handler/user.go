package handler

import (
	"errors"
	"net/http"

	"campusdir/internal/middleware"
	"campusdir/internal/models"
	"campusdir/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserHandler interface {
	GetProfile(c *gin.Context)
	AdminDashboard(c *gin.Context)
	DeptStudents(c *gin.Context)
	DeleteStudent(c *gin.Context)
	DeleteHOD(c *gin.Context)
	CheckHODExists(c *gin.Context)
}

type userHandler struct {
	directory service.DirectoryService
	log       *logrus.Logger
}

func NewUserHandler(directory service.DirectoryService, log *logrus.Logger) UserHandler {
	return &userHandler{directory: directory, log: log}
}

// GetProfile handles GET /api/users/profile
func (h *userHandler) GetProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	user, err := h.directory.GetProfile(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.log.Errorf("Failed to get profile for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// AdminDashboard handles GET /api/users/admin
func (h *userHandler) AdminDashboard(c *gin.Context) {
	h.dashboard(c)
}

// DeptStudents handles GET /api/users/hod/students
func (h *userHandler) DeptStudents(c *gin.Context) {
	h.dashboard(c)
}

func (h *userHandler) dashboard(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	dashboard, err := h.directory.GetDashboard(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.log.Errorf("Failed to build dashboard for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dashboard"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// DeleteStudent handles DELETE /api/users/students/:id
func (h *userHandler) DeleteStudent(c *gin.Context) {
	h.deleteUser(c, "Student")
}

// DeleteHOD handles DELETE /api/users/hods/:id
func (h *userHandler) DeleteHOD(c *gin.Context) {
	h.deleteUser(c, "HOD")
}

func (h *userHandler) deleteUser(c *gin.Context, label string) {
	actorID := c.MustGet(middleware.ContextUserID).(string)
	targetID := c.Param("id")

	if err := h.directory.DeleteUser(actorID, targetID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": label + " not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to delete this user"})
		default:
			h.log.Errorf("Failed to delete user %s: %v", targetID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete " + label})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": label + " deleted successfully"})
}

// CheckHODExists handles GET /api/users/hods/:department
func (h *userHandler) CheckHODExists(c *gin.Context) {
	department := models.Department(c.Param("department"))

	exists, err := h.directory.HODExists(department)
	if err != nil {
		h.log.Errorf("Failed to check HOD existence for %s: %v", department, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking HOD existence"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": exists})
}
