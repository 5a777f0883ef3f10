package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/milan-codes/studician-api/internal/model"
	"github.com/milan-codes/studician-api/internal/repository"
)

// SubjectService owns the subject lifecycle, including the cascade that
// removes a subject's lessons, tasks and exams together with it.
type SubjectService struct {
	subjects *repository.SubjectRepository
	lessons  *repository.LessonRepository
	tasks    *repository.TaskRepository
	exams    *repository.ExamRepository
	log      zerolog.Logger
}

func NewSubjectService(
	subjects *repository.SubjectRepository,
	lessons *repository.LessonRepository,
	tasks *repository.TaskRepository,
	exams *repository.ExamRepository,
	log zerolog.Logger,
) *SubjectService {
	return &SubjectService{
		subjects: subjects,
		lessons:  lessons,
		tasks:    tasks,
		exams:    exams,
		log:      log.With().Str("component", "subject_service").Logger(),
	}
}

func (s *SubjectService) List(ctx context.Context, userID string) (map[string]model.Subject, error) {
	return s.subjects.ListByUser(ctx, userID)
}

func (s *SubjectService) Get(ctx context.Context, userID, subjectID string) (*model.Subject, bool, error) {
	return s.subjects.Get(ctx, userID, subjectID)
}

func (s *SubjectService) Create(ctx context.Context, userID string, sub *model.Subject) error {
	return s.subjects.Create(ctx, userID, sub)
}

// Replace overwrites an existing subject. The target must exist; a replace
// may not resurrect a deleted record.
func (s *SubjectService) Replace(ctx context.Context, userID, subjectID string, sub *model.Subject) error {
	exists, err := s.subjects.Exists(ctx, userID, subjectID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTargetNotFound
	}
	return s.subjects.Replace(ctx, userID, subjectID, sub)
}

// CascadeDelete removes the subject and every lesson, task and exam scoped
// to it. Dependents go first so a partial failure never leaves orphans
// under a deleted parent; deletes are idempotent, so a failed cascade can
// simply be re-run.
func (s *SubjectService) CascadeDelete(ctx context.Context, userID, subjectID string) error {
	steps := []struct {
		collection string
		delete     func(context.Context, string, string) error
	}{
		{"lessons", s.lessons.DeleteBySubject},
		{"tasks", s.tasks.DeleteBySubject},
		{"exams", s.exams.DeleteBySubject},
		{"subjects", s.subjects.Delete},
	}

	for _, step := range steps {
		if err := step.delete(ctx, userID, subjectID); err != nil {
			s.log.Error().
				Err(err).
				Str("collection", step.collection).
				Str("user_id", userID).
				Str("subject_id", subjectID).
				Msg("Cascade aborted")
			return err
		}
	}

	s.log.Info().
		Str("user_id", userID).
		Str("subject_id", subjectID).
		Msg("Subject deleted with dependents")
	return nil
}
