package model

// Task types.
const (
	TaskTypeAssignment = 1
	TaskTypeRevision   = 2
)

// Task is a piece of homework or revision tied to a subject. Description
// and Reminder are optional and stored as null when absent.
type Task struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Type        int     `json:"type"`
	SubjectID   string  `json:"subjectId"`
	DueDate     int64   `json:"dueDate"`
	Reminder    *int64  `json:"reminder"`
	ID          string  `json:"id"`
}

// TaskRequest is the payload for creating or replacing a task. Timestamps
// are unix seconds.
type TaskRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Type        int     `json:"type" binding:"required,oneof=1 2"`
	SubjectID   string  `json:"subjectId" binding:"required"`
	DueDate     int64   `json:"dueDate" binding:"required,unixts"`
	Reminder    *int64  `json:"reminder" binding:"omitempty,unixts"`
}

// Task builds the stored record from the payload, scoped under the given
// subject and id.
func (r *TaskRequest) Task(subjectID, id string) *Task {
	return &Task{
		Name:        r.Name,
		Description: r.Description,
		Type:        r.Type,
		SubjectID:   subjectID,
		DueDate:     r.DueDate,
		Reminder:    r.Reminder,
		ID:          id,
	}
}
