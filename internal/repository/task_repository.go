package repository

import (
	"context"
	"fmt"

	"github.com/milan-codes/studician-api/internal/model"
	"github.com/milan-codes/studician-api/internal/store"
)

type TaskRepository struct {
	store *store.Client
}

func NewTaskRepository(st *store.Client) *TaskRepository {
	return &TaskRepository{store: st}
}

func taskPath(userID, subjectID, taskID string) string {
	return fmt.Sprintf("tasks/%s/%s/%s", userID, subjectID, taskID)
}

func (r *TaskRepository) Create(ctx context.Context, userID string, t *model.Task) error {
	t.ID = r.store.NewKey()
	return r.store.Set(ctx, taskPath(userID, t.SubjectID, t.ID), t)
}

// ListByUser returns every task of a user, grouped by subject id.
func (r *TaskRepository) ListByUser(ctx context.Context, userID string) (map[string]map[string]model.Task, error) {
	tasks := make(map[string]map[string]model.Task)
	if _, err := r.store.Get(ctx, "tasks/"+userID, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) ListBySubject(ctx context.Context, userID, subjectID string) (map[string]model.Task, error) {
	tasks := make(map[string]model.Task)
	if _, err := r.store.Get(ctx, fmt.Sprintf("tasks/%s/%s", userID, subjectID), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Get(ctx context.Context, userID, subjectID, taskID string) (*model.Task, bool, error) {
	var t model.Task
	found, err := r.store.Get(ctx, taskPath(userID, subjectID, taskID), &t)
	if err != nil || !found {
		return nil, false, err
	}
	return &t, true, nil
}

func (r *TaskRepository) Exists(ctx context.Context, userID, subjectID, taskID string) (bool, error) {
	return r.store.Exists(ctx, taskPath(userID, subjectID, taskID))
}

func (r *TaskRepository) Replace(ctx context.Context, userID, subjectID, taskID string, t *model.Task) error {
	t.SubjectID = subjectID
	t.ID = taskID
	return r.store.Set(ctx, taskPath(userID, subjectID, taskID), t)
}

func (r *TaskRepository) Delete(ctx context.Context, userID, subjectID, taskID string) error {
	return r.store.Delete(ctx, taskPath(userID, subjectID, taskID))
}

// DeleteBySubject removes the whole task subtree of a subject in one call.
func (r *TaskRepository) DeleteBySubject(ctx context.Context, userID, subjectID string) error {
	return r.store.Delete(ctx, fmt.Sprintf("tasks/%s/%s", userID, subjectID))
}
