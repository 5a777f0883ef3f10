package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milan-codes/studician-api/internal/model"
	"github.com/milan-codes/studician-api/internal/response"
	"github.com/milan-codes/studician-api/internal/service"
	"github.com/milan-codes/studician-api/internal/validator"
)

type LessonHandler struct {
	lessonService *service.LessonService
}

func NewLessonHandler(lessonService *service.LessonService) *LessonHandler {
	return &LessonHandler{lessonService: lessonService}
}

// List godoc
// GET /lessons/:userId
//
// Returns the user's lessons grouped by subject id.
func (h *LessonHandler) List(c *gin.Context) {
	lessons, err := h.lessonService.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, lessons)
}

// ListBySubject godoc
// GET /lessons/:userId/:subjectId
func (h *LessonHandler) ListBySubject(c *gin.Context) {
	lessons, err := h.lessonService.ListBySubject(c.Request.Context(), c.Param("userId"), c.Param("subjectId"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, lessons)
}

// Get godoc
// GET /lessons/:userId/:subjectId/:lessonId
func (h *LessonHandler) Get(c *gin.Context) {
	lesson, found, err := h.lessonService.Get(c.Request.Context(), c.Param("userId"), c.Param("subjectId"), c.Param("lessonId"))
	if err != nil {
		failFromError(c, err)
		return
	}
	if !found {
		response.Success(c, http.StatusOK, gin.H{})
		return
	}
	response.Success(c, http.StatusOK, lesson)
}

// Create godoc
// POST /lessons/:userId
//
// The referenced subject must exist; the service rejects orphans.
func (h *LessonHandler) Create(c *gin.Context) {
	var req model.LessonRequest
	if bindErr := validator.Bind(c, &req); bindErr != nil {
		response.FailWithFields(c, http.StatusBadRequest, bindErr.Code, bindErr.Fields)
		return
	}

	lesson := req.Lesson(req.SubjectID, "")
	if err := h.lessonService.Create(c.Request.Context(), c.Param("userId"), lesson); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, lesson)
}

// Update godoc
// PUT /lessons/:userId/:subjectId/:lessonId
func (h *LessonHandler) Update(c *gin.Context) {
	var req model.LessonRequest
	if bindErr := validator.Bind(c, &req); bindErr != nil {
		response.FailWithFields(c, http.StatusBadRequest, bindErr.Code, bindErr.Fields)
		return
	}

	subjectID := c.Param("subjectId")
	lessonID := c.Param("lessonId")
	if err := h.lessonService.Replace(c.Request.Context(), c.Param("userId"), subjectID, lessonID, req.Lesson(subjectID, lessonID)); err != nil {
		failFromError(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// DELETE /lessons/:userId/:subjectId/:lessonId
func (h *LessonHandler) Delete(c *gin.Context) {
	if err := h.lessonService.Delete(c.Request.Context(), c.Param("userId"), c.Param("subjectId"), c.Param("lessonId")); err != nil {
		failFromError(c, err)
		return
	}
	response.NoContent(c)
}
