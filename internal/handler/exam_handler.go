package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milan-codes/studician-api/internal/model"
	"github.com/milan-codes/studician-api/internal/response"
	"github.com/milan-codes/studician-api/internal/service"
	"github.com/milan-codes/studician-api/internal/validator"
)

type ExamHandler struct {
	examService *service.ExamService
}

func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// List godoc
// GET /exams/:userId
//
// Returns the user's exams grouped by subject id.
func (h *ExamHandler) List(c *gin.Context) {
	exams, err := h.examService.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, exams)
}

// ListBySubject godoc
// GET /exams/:userId/:subjectId
func (h *ExamHandler) ListBySubject(c *gin.Context) {
	exams, err := h.examService.ListBySubject(c.Request.Context(), c.Param("userId"), c.Param("subjectId"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, exams)
}

// Get godoc
// GET /exams/:userId/:subjectId/:examId
func (h *ExamHandler) Get(c *gin.Context) {
	exam, found, err := h.examService.Get(c.Request.Context(), c.Param("userId"), c.Param("subjectId"), c.Param("examId"))
	if err != nil {
		failFromError(c, err)
		return
	}
	if !found {
		response.Success(c, http.StatusOK, gin.H{})
		return
	}
	response.Success(c, http.StatusOK, exam)
}

// Create godoc
// POST /exams/:userId
//
// The referenced subject must exist; the service rejects orphans.
func (h *ExamHandler) Create(c *gin.Context) {
	var req model.ExamRequest
	if bindErr := validator.Bind(c, &req); bindErr != nil {
		response.FailWithFields(c, http.StatusBadRequest, bindErr.Code, bindErr.Fields)
		return
	}

	exam := req.Exam(req.SubjectID, "")
	if err := h.examService.Create(c.Request.Context(), c.Param("userId"), exam); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, exam)
}

// Update godoc
// PUT /exams/:userId/:subjectId/:examId
func (h *ExamHandler) Update(c *gin.Context) {
	var req model.ExamRequest
	if bindErr := validator.Bind(c, &req); bindErr != nil {
		response.FailWithFields(c, http.StatusBadRequest, bindErr.Code, bindErr.Fields)
		return
	}

	subjectID := c.Param("subjectId")
	examID := c.Param("examId")
	if err := h.examService.Replace(c.Request.Context(), c.Param("userId"), subjectID, examID, req.Exam(subjectID, examID)); err != nil {
		failFromError(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// DELETE /exams/:userId/:subjectId/:examId
func (h *ExamHandler) Delete(c *gin.Context) {
	if err := h.examService.Delete(c.Request.Context(), c.Param("userId"), c.Param("subjectId"), c.Param("examId")); err != nil {
		failFromError(c, err)
		return
	}
	response.NoContent(c)
}
