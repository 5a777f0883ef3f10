package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/milan-codes/studician-api/internal/model"
	"github.com/milan-codes/studician-api/internal/repository"
)

type LessonService struct {
	lessons  *repository.LessonRepository
	subjects *repository.SubjectRepository
	log      zerolog.Logger
}

func NewLessonService(lessons *repository.LessonRepository, subjects *repository.SubjectRepository, log zerolog.Logger) *LessonService {
	return &LessonService{
		lessons:  lessons,
		subjects: subjects,
		log:      log.With().Str("component", "lesson_service").Logger(),
	}
}

func (s *LessonService) ListByUser(ctx context.Context, userID string) (map[string]map[string]model.Lesson, error) {
	return s.lessons.ListByUser(ctx, userID)
}

func (s *LessonService) ListBySubject(ctx context.Context, userID, subjectID string) (map[string]model.Lesson, error) {
	return s.lessons.ListBySubject(ctx, userID, subjectID)
}

func (s *LessonService) Get(ctx context.Context, userID, subjectID, lessonID string) (*model.Lesson, bool, error) {
	return s.lessons.Get(ctx, userID, subjectID, lessonID)
}

// Create gates the write on the parent subject existing. The check and the
// write are two independent store calls; the race with a concurrent parent
// delete is accepted (see the subject cascade for the other half).
func (s *LessonService) Create(ctx context.Context, userID string, l *model.Lesson) error {
	exists, err := s.subjects.Exists(ctx, userID, l.SubjectID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSubjectNotFound
	}
	return s.lessons.Create(ctx, userID, l)
}

// Replace overwrites an existing lesson; the target must exist.
func (s *LessonService) Replace(ctx context.Context, userID, subjectID, lessonID string, l *model.Lesson) error {
	exists, err := s.lessons.Exists(ctx, userID, subjectID, lessonID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTargetNotFound
	}
	return s.lessons.Replace(ctx, userID, subjectID, lessonID, l)
}

func (s *LessonService) Delete(ctx context.Context, userID, subjectID, lessonID string) error {
	return s.lessons.Delete(ctx, userID, subjectID, lessonID)
}
