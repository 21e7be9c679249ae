package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/semsolhan1/todo-api202306/internal/middleware"
	"github.com/semsolhan1/todo-api202306/internal/models"
	"github.com/semsolhan1/todo-api202306/internal/service"
	"github.com/semsolhan1/todo-api202306/pkg/logger"
)

// AuthController adapts the user API: sign-up, sign-in, profile image upload.
type AuthController struct {
	users *service.UserService
}

// NewAuthController returns a controller over the given user service.
func NewAuthController(users *service.UserService) *AuthController {
	return &AuthController{users: users}
}

// SignUp handles POST /api/auth/signup.
func (ac *AuthController) SignUp(c *gin.Context) {
	ctx := c.Request.Context()
	var req models.UserSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs[0])
		return
	}
	resp, err := ac.users.SignUp(ctx, &req)
	if err != nil {
		logger.Error(ctx, "Sign-up failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SignIn handles POST /api/auth/signin.
func (ac *AuthController) SignIn(c *gin.Context) {
	ctx := c.Request.Context()
	var req models.UserSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs[0])
		return
	}
	resp, err := ac.users.SignIn(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logger.Error(ctx, "Sign-in failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ProfileImage handles POST /api/users/profile-image (multipart upload).
func (ac *AuthController) ProfileImage(c *gin.Context) {
	ctx := c.Request.Context()
	info, ok := middleware.CallerInfo(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	fileHeader, err := c.FormFile("profileImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "profileImage file is required"})
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()
	name, err := ac.users.UploadProfileImage(ctx, info.UserID, fileHeader.Filename, src)
	if err != nil {
		logger.Error(ctx, "Profile image upload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fileName": name})
}
