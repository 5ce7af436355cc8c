package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	todoapp "github.com/workhive/todos-backend/internal/application/todo"
)

// TodoHandler handles todo-related API endpoints
type TodoHandler struct {
	BaseHandler
	todoService *todoapp.TodoService
}

// NewTodoHandler creates a new TodoHandler
func NewTodoHandler(todoService *todoapp.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// RegisterRoutes registers todo routes on the given group
func (h *TodoHandler) RegisterRoutes(rg *gin.RouterGroup) {
	todos := rg.Group("/todos")
	{
		todos.GET("", h.List)
		todos.POST("", h.Create)
		todos.GET("/:id", h.GetByID)
		todos.PUT("/:id", h.Update)
		todos.DELETE("/:id", h.Delete)
		todos.DELETE("", h.DeleteByDate)
	}
}

// List returns the caller's todos for the selected window. A single date
// takes priority over a month filter, a month filter over a range.
func (h *TodoHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var query todoapp.TodoQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	todos, err := h.todoService.GetTodos(c.Request.Context(), userID, query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, todos)
}

// GetByID returns one of the caller's todos
func (h *TodoHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid todo ID format")
		return
	}

	todo, err := h.todoService.GetTodo(c.Request.Context(), userID, todoID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, todo)
}

// Create creates one todo per requested due date
func (h *TodoHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req todoapp.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	todos, err := h.todoService.CreateTodos(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, todos)
}

// Update replaces a todo's mutable fields
func (h *TodoHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid todo ID format")
		return
	}

	var req todoapp.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	todo, err := h.todoService.UpdateTodo(c.Request.Context(), userID, todoID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, todo)
}

// Delete deletes a single todo. Completed todos are refused.
func (h *TodoHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid todo ID format")
		return
	}

	if err := h.todoService.DeleteTodo(c.Request.Context(), userID, todoID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// DeleteByDate deletes the caller's uncompleted todos due on the given date
func (h *TodoHandler) DeleteByDate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var query todoapp.DeleteByDateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.todoService.DeleteTodosByDate(c.Request.Context(), userID, query.Date)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
