package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/milan-codes/studician-api/internal/model"
	"github.com/milan-codes/studician-api/internal/repository"
)

type TaskService struct {
	tasks    *repository.TaskRepository
	subjects *repository.SubjectRepository
	log      zerolog.Logger
}

func NewTaskService(tasks *repository.TaskRepository, subjects *repository.SubjectRepository, log zerolog.Logger) *TaskService {
	return &TaskService{
		tasks:    tasks,
		subjects: subjects,
		log:      log.With().Str("component", "task_service").Logger(),
	}
}

func (s *TaskService) ListByUser(ctx context.Context, userID string) (map[string]map[string]model.Task, error) {
	return s.tasks.ListByUser(ctx, userID)
}

func (s *TaskService) ListBySubject(ctx context.Context, userID, subjectID string) (map[string]model.Task, error) {
	return s.tasks.ListBySubject(ctx, userID, subjectID)
}

func (s *TaskService) Get(ctx context.Context, userID, subjectID, taskID string) (*model.Task, bool, error) {
	return s.tasks.Get(ctx, userID, subjectID, taskID)
}

// Create gates the write on the parent subject existing.
func (s *TaskService) Create(ctx context.Context, userID string, t *model.Task) error {
	exists, err := s.subjects.Exists(ctx, userID, t.SubjectID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSubjectNotFound
	}
	return s.tasks.Create(ctx, userID, t)
}

// Replace overwrites an existing task; the target must exist.
func (s *TaskService) Replace(ctx context.Context, userID, subjectID, taskID string, t *model.Task) error {
	exists, err := s.tasks.Exists(ctx, userID, subjectID, taskID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTargetNotFound
	}
	return s.tasks.Replace(ctx, userID, subjectID, taskID, t)
}

func (s *TaskService) Delete(ctx context.Context, userID, subjectID, taskID string) error {
	return s.tasks.Delete(ctx, userID, subjectID, taskID)
}
