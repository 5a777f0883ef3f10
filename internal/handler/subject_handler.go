package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milan-codes/studician-api/internal/model"
	"github.com/milan-codes/studician-api/internal/response"
	"github.com/milan-codes/studician-api/internal/service"
	"github.com/milan-codes/studician-api/internal/validator"
)

type SubjectHandler struct {
	subjectService *service.SubjectService
}

func NewSubjectHandler(subjectService *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

// List godoc
// GET /subjects/:userId
func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.subjectService.List(c.Request.Context(), c.Param("userId"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, subjects)
}

// Get godoc
// GET /subjects/:userId/:subjectId
//
// A missing subject is a normal empty result, not a 404.
func (h *SubjectHandler) Get(c *gin.Context) {
	subject, found, err := h.subjectService.Get(c.Request.Context(), c.Param("userId"), c.Param("subjectId"))
	if err != nil {
		failFromError(c, err)
		return
	}
	if !found {
		response.Success(c, http.StatusOK, gin.H{})
		return
	}
	response.Success(c, http.StatusOK, subject)
}

// Create godoc
// POST /subjects/:userId
func (h *SubjectHandler) Create(c *gin.Context) {
	var req model.SubjectRequest
	if bindErr := validator.Bind(c, &req); bindErr != nil {
		response.FailWithFields(c, http.StatusBadRequest, bindErr.Code, bindErr.Fields)
		return
	}

	subject := req.Subject("")
	if err := h.subjectService.Create(c.Request.Context(), c.Param("userId"), subject); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, subject)
}

// Update godoc
// PUT /subjects/:userId/:subjectId
func (h *SubjectHandler) Update(c *gin.Context) {
	var req model.SubjectRequest
	if bindErr := validator.Bind(c, &req); bindErr != nil {
		response.FailWithFields(c, http.StatusBadRequest, bindErr.Code, bindErr.Fields)
		return
	}

	subjectID := c.Param("subjectId")
	if err := h.subjectService.Replace(c.Request.Context(), c.Param("userId"), subjectID, req.Subject(subjectID)); err != nil {
		failFromError(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// DELETE /subjects/:userId/:subjectId
//
// Removes the subject together with all of its lessons, tasks and exams.
func (h *SubjectHandler) Delete(c *gin.Context) {
	if err := h.subjectService.CascadeDelete(c.Request.Context(), c.Param("userId"), c.Param("subjectId")); err != nil {
		failFromError(c, err)
		return
	}
	response.NoContent(c)
}
