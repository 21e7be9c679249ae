package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/semsolhan1/todo-api202306/internal/middleware"
	"github.com/semsolhan1/todo-api202306/internal/models"
	"github.com/semsolhan1/todo-api202306/internal/service"
	"github.com/semsolhan1/todo-api202306/pkg/logger"
)

// TodoController adapts HTTP requests on /api/todos to the todo service.
type TodoController struct {
	svc *service.TodoService
}

// NewTodoController returns a controller over the given service.
func NewTodoController(svc *service.TodoService) *TodoController {
	return &TodoController{svc: svc}
}

// List handles GET /api/todos.
func (tc *TodoController) List(c *gin.Context) {
	ctx := c.Request.Context()
	info, ok := middleware.CallerInfo(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	resp, err := tc.svc.Retrieve(ctx, info.UserID)
	if err != nil {
		logger.Error(ctx, "Retrieve failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/todos. Validation failures report the first
// offending field with 400; everything else from the service maps to 500.
func (tc *TodoController) Create(c *gin.Context) {
	ctx := c.Request.Context()
	info, ok := middleware.CallerInfo(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req models.TodoCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		logger.Warn(ctx, "Create validation failed", "field", errs[0].Field, "message", errs[0].Message)
		c.JSON(http.StatusBadRequest, errs[0])
		return
	}
	resp, err := tc.svc.Create(ctx, &req, info)
	if err != nil {
		logger.Error(ctx, "Create failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update handles PUT and PATCH /api/todos.
func (tc *TodoController) Update(c *gin.Context) {
	ctx := c.Request.Context()
	info, ok := middleware.CallerInfo(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req models.TodoModifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs[0])
		return
	}
	logger.Info(ctx, "Todo update requested", "method", c.Request.Method, "id", req.ID)
	resp, err := tc.svc.Update(ctx, &req, info.UserID)
	if err != nil {
		logger.Error(ctx, "Update failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /api/todos/:id. A blank id is rejected with 400; a
// missing one surfaces as the service's generic deletion failure.
func (tc *TodoController) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	info, ok := middleware.CallerInfo(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id := c.Param("id")
	logger.Info(ctx, "Todo delete requested", "id", id)
	if strings.TrimSpace(id) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide an id"})
		return
	}
	resp, err := tc.svc.Delete(ctx, id, info.UserID)
	if err != nil {
		logger.Error(ctx, "Delete failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
