package model

// Exam is an upcoming exam of a subject. Description and Reminder are
// optional and stored as null when absent.
type Exam struct {
	Name        string  `json:"name"`
	SubjectID   string  `json:"subjectId"`
	DueDate     int64   `json:"dueDate"`
	Description *string `json:"description"`
	Reminder    *int64  `json:"reminder"`
	ID          string  `json:"id"`
}

// ExamRequest is the payload for creating or replacing an exam. Timestamps
// are unix seconds.
type ExamRequest struct {
	Name        string  `json:"name" binding:"required"`
	SubjectID   string  `json:"subjectId" binding:"required"`
	DueDate     int64   `json:"dueDate" binding:"required,unixts"`
	Description *string `json:"description"`
	Reminder    *int64  `json:"reminder" binding:"omitempty,unixts"`
}

// Exam builds the stored record from the payload, scoped under the given
// subject and id.
func (r *ExamRequest) Exam(subjectID, id string) *Exam {
	return &Exam{
		Name:        r.Name,
		SubjectID:   subjectID,
		DueDate:     r.DueDate,
		Description: r.Description,
		Reminder:    r.Reminder,
		ID:          id,
	}
}
