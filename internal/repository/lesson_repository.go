package repository

import (
	"context"
	"fmt"

	"github.com/milan-codes/studician-api/internal/model"
	"github.com/milan-codes/studician-api/internal/store"
)

type LessonRepository struct {
	store *store.Client
}

func NewLessonRepository(st *store.Client) *LessonRepository {
	return &LessonRepository{store: st}
}

func lessonPath(userID, subjectID, lessonID string) string {
	return fmt.Sprintf("lessons/%s/%s/%s", userID, subjectID, lessonID)
}

// Create assigns a fresh key to l and writes it under its subject's subtree.
func (r *LessonRepository) Create(ctx context.Context, userID string, l *model.Lesson) error {
	l.ID = r.store.NewKey()
	return r.store.Set(ctx, lessonPath(userID, l.SubjectID, l.ID), l)
}

// ListByUser returns every lesson of a user, grouped by subject id.
func (r *LessonRepository) ListByUser(ctx context.Context, userID string) (map[string]map[string]model.Lesson, error) {
	lessons := make(map[string]map[string]model.Lesson)
	if _, err := r.store.Get(ctx, "lessons/"+userID, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// ListBySubject returns a subject's lessons keyed by id.
func (r *LessonRepository) ListBySubject(ctx context.Context, userID, subjectID string) (map[string]model.Lesson, error) {
	lessons := make(map[string]model.Lesson)
	if _, err := r.store.Get(ctx, fmt.Sprintf("lessons/%s/%s", userID, subjectID), &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *LessonRepository) Get(ctx context.Context, userID, subjectID, lessonID string) (*model.Lesson, bool, error) {
	var l model.Lesson
	found, err := r.store.Get(ctx, lessonPath(userID, subjectID, lessonID), &l)
	if err != nil || !found {
		return nil, false, err
	}
	return &l, true, nil
}

func (r *LessonRepository) Exists(ctx context.Context, userID, subjectID, lessonID string) (bool, error) {
	return r.store.Exists(ctx, lessonPath(userID, subjectID, lessonID))
}

// Replace overwrites the lesson's addressable fields, preserving its path
// identity.
func (r *LessonRepository) Replace(ctx context.Context, userID, subjectID, lessonID string, l *model.Lesson) error {
	l.SubjectID = subjectID
	l.ID = lessonID
	return r.store.Set(ctx, lessonPath(userID, subjectID, lessonID), l)
}

func (r *LessonRepository) Delete(ctx context.Context, userID, subjectID, lessonID string) error {
	return r.store.Delete(ctx, lessonPath(userID, subjectID, lessonID))
}

// DeleteBySubject removes the whole lesson subtree of a subject in one call.
func (r *LessonRepository) DeleteBySubject(ctx context.Context, userID, subjectID string) error {
	return r.store.Delete(ctx, fmt.Sprintf("lessons/%s/%s", userID, subjectID))
}
