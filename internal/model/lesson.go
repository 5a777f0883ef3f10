package model

// Lesson is a recurring timetable slot of a subject. Day runs 1 (Sunday)
// through 7 (Saturday); Week marks the A/B rotation.
type Lesson struct {
	SubjectID string `json:"subjectId"`
	Week      string `json:"week"`
	Day       int    `json:"day"`
	Starts    string `json:"starts"`
	Ends      string `json:"ends"`
	Location  string `json:"location"`
	ID        string `json:"id"`
}

// LessonRequest is the payload for creating or replacing a lesson.
type LessonRequest struct {
	SubjectID string `json:"subjectId" binding:"required"`
	Week      string `json:"week" binding:"required,oneof=A B"`
	Day       int    `json:"day" binding:"required,min=1,max=7"`
	Starts    string `json:"starts" binding:"required"`
	Ends      string `json:"ends" binding:"required"`
	Location  string `json:"location" binding:"required"`
}

// Lesson builds the stored record from the payload, scoped under the given
// subject and id.
func (r *LessonRequest) Lesson(subjectID, id string) *Lesson {
	return &Lesson{
		SubjectID: subjectID,
		Week:      r.Week,
		Day:       r.Day,
		Starts:    r.Starts,
		Ends:      r.Ends,
		Location:  r.Location,
		ID:        id,
	}
}
