package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milan-codes/studician-api/internal/model"
	"github.com/milan-codes/studician-api/internal/response"
	"github.com/milan-codes/studician-api/internal/service"
	"github.com/milan-codes/studician-api/internal/validator"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List godoc
// GET /tasks/:userId
//
// Returns the user's tasks grouped by subject id.
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.taskService.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tasks)
}

// ListBySubject godoc
// GET /tasks/:userId/:subjectId
func (h *TaskHandler) ListBySubject(c *gin.Context) {
	tasks, err := h.taskService.ListBySubject(c.Request.Context(), c.Param("userId"), c.Param("subjectId"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tasks)
}

// Get godoc
// GET /tasks/:userId/:subjectId/:taskId
func (h *TaskHandler) Get(c *gin.Context) {
	task, found, err := h.taskService.Get(c.Request.Context(), c.Param("userId"), c.Param("subjectId"), c.Param("taskId"))
	if err != nil {
		failFromError(c, err)
		return
	}
	if !found {
		response.Success(c, http.StatusOK, gin.H{})
		return
	}
	response.Success(c, http.StatusOK, task)
}

// Create godoc
// POST /tasks/:userId
//
// The referenced subject must exist; the service rejects orphans.
func (h *TaskHandler) Create(c *gin.Context) {
	var req model.TaskRequest
	if bindErr := validator.Bind(c, &req); bindErr != nil {
		response.FailWithFields(c, http.StatusBadRequest, bindErr.Code, bindErr.Fields)
		return
	}

	task := req.Task(req.SubjectID, "")
	if err := h.taskService.Create(c.Request.Context(), c.Param("userId"), task); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, task)
}

// Update godoc
// PUT /tasks/:userId/:subjectId/:taskId
func (h *TaskHandler) Update(c *gin.Context) {
	var req model.TaskRequest
	if bindErr := validator.Bind(c, &req); bindErr != nil {
		response.FailWithFields(c, http.StatusBadRequest, bindErr.Code, bindErr.Fields)
		return
	}

	subjectID := c.Param("subjectId")
	taskID := c.Param("taskId")
	if err := h.taskService.Replace(c.Request.Context(), c.Param("userId"), subjectID, taskID, req.Task(subjectID, taskID)); err != nil {
		failFromError(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// DELETE /tasks/:userId/:subjectId/:taskId
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.taskService.Delete(c.Request.Context(), c.Param("userId"), c.Param("subjectId"), c.Param("taskId")); err != nil {
		failFromError(c, err)
		return
	}
	response.NoContent(c)
}
