package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/milan-codes/studician-api/internal/model"
	"github.com/milan-codes/studician-api/internal/repository"
)

type ExamService struct {
	exams    *repository.ExamRepository
	subjects *repository.SubjectRepository
	log      zerolog.Logger
}

func NewExamService(exams *repository.ExamRepository, subjects *repository.SubjectRepository, log zerolog.Logger) *ExamService {
	return &ExamService{
		exams:    exams,
		subjects: subjects,
		log:      log.With().Str("component", "exam_service").Logger(),
	}
}

func (s *ExamService) ListByUser(ctx context.Context, userID string) (map[string]map[string]model.Exam, error) {
	return s.exams.ListByUser(ctx, userID)
}

func (s *ExamService) ListBySubject(ctx context.Context, userID, subjectID string) (map[string]model.Exam, error) {
	return s.exams.ListBySubject(ctx, userID, subjectID)
}

func (s *ExamService) Get(ctx context.Context, userID, subjectID, examID string) (*model.Exam, bool, error) {
	return s.exams.Get(ctx, userID, subjectID, examID)
}

// Create gates the write on the parent subject existing.
func (s *ExamService) Create(ctx context.Context, userID string, e *model.Exam) error {
	exists, err := s.subjects.Exists(ctx, userID, e.SubjectID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSubjectNotFound
	}
	return s.exams.Create(ctx, userID, e)
}

// Replace overwrites an existing exam; the target must exist.
func (s *ExamService) Replace(ctx context.Context, userID, subjectID, examID string, e *model.Exam) error {
	exists, err := s.exams.Exists(ctx, userID, subjectID, examID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTargetNotFound
	}
	return s.exams.Replace(ctx, userID, subjectID, examID, e)
}

func (s *ExamService) Delete(ctx context.Context, userID, subjectID, examID string) error {
	return s.exams.Delete(ctx, userID, subjectID, examID)
}
