package model

// Subject is the root aggregate: lessons, tasks and exams all reference one.
type Subject struct {
	Name      string `json:"name"`
	Teacher   string `json:"teacher"`
	ColorCode int    `json:"colorCode"`
	ID        string `json:"id"`
}

// SubjectRequest is the payload for creating or replacing a subject.
type SubjectRequest struct {
	Name      string `json:"name" binding:"required"`
	Teacher   string `json:"teacher" binding:"required"`
	ColorCode int    `json:"colorCode" binding:"required"`
}

// Subject builds the stored record from the payload. The id is assigned by
// the caller (store key on create, path id on replace).
func (r *SubjectRequest) Subject(id string) *Subject {
	return &Subject{
		Name:      r.Name,
		Teacher:   r.Teacher,
		ColorCode: r.ColorCode,
		ID:        id,
	}
}
