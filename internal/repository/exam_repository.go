package repository

import (
	"context"
	"fmt"

	"github.com/milan-codes/studician-api/internal/model"
	"github.com/milan-codes/studician-api/internal/store"
)

type ExamRepository struct {
	store *store.Client
}

func NewExamRepository(st *store.Client) *ExamRepository {
	return &ExamRepository{store: st}
}

func examPath(userID, subjectID, examID string) string {
	return fmt.Sprintf("exams/%s/%s/%s", userID, subjectID, examID)
}

func (r *ExamRepository) Create(ctx context.Context, userID string, e *model.Exam) error {
	e.ID = r.store.NewKey()
	return r.store.Set(ctx, examPath(userID, e.SubjectID, e.ID), e)
}

// ListByUser returns every exam of a user, grouped by subject id.
func (r *ExamRepository) ListByUser(ctx context.Context, userID string) (map[string]map[string]model.Exam, error) {
	exams := make(map[string]map[string]model.Exam)
	if _, err := r.store.Get(ctx, "exams/"+userID, &exams); err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *ExamRepository) ListBySubject(ctx context.Context, userID, subjectID string) (map[string]model.Exam, error) {
	exams := make(map[string]model.Exam)
	if _, err := r.store.Get(ctx, fmt.Sprintf("exams/%s/%s", userID, subjectID), &exams); err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *ExamRepository) Get(ctx context.Context, userID, subjectID, examID string) (*model.Exam, bool, error) {
	var e model.Exam
	found, err := r.store.Get(ctx, examPath(userID, subjectID, examID), &e)
	if err != nil || !found {
		return nil, false, err
	}
	return &e, true, nil
}

func (r *ExamRepository) Exists(ctx context.Context, userID, subjectID, examID string) (bool, error) {
	return r.store.Exists(ctx, examPath(userID, subjectID, examID))
}

func (r *ExamRepository) Replace(ctx context.Context, userID, subjectID, examID string, e *model.Exam) error {
	e.SubjectID = subjectID
	e.ID = examID
	return r.store.Set(ctx, examPath(userID, subjectID, examID), e)
}

func (r *ExamRepository) Delete(ctx context.Context, userID, subjectID, examID string) error {
	return r.store.Delete(ctx, examPath(userID, subjectID, examID))
}

// DeleteBySubject removes the whole exam subtree of a subject in one call.
func (r *ExamRepository) DeleteBySubject(ctx context.Context, userID, subjectID string) error {
	return r.store.Delete(ctx, fmt.Sprintf("exams/%s/%s", userID, subjectID))
}
