// Command seed-demo fills a user's tree with sample subjects, lessons,
// tasks and exams, for developing against a local store emulator.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/milan-codes/studician-api/internal/config"
	"github.com/milan-codes/studician-api/internal/logger"
	"github.com/milan-codes/studician-api/internal/model"
	"github.com/milan-codes/studician-api/internal/repository"
	"github.com/milan-codes/studician-api/internal/store"
)

func main() {
	userID := flag.String("user", "demo-user", "principal id to seed under")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st := store.New(cfg.StoreURL, cfg.StoreAuth, cfg.StoreTimeout, log)

	subjectRepo := repository.NewSubjectRepository(st)
	lessonRepo := repository.NewLessonRepository(st)
	taskRepo := repository.NewTaskRepository(st)
	examRepo := repository.NewExamRepository(st)

	fmt.Printf("=== Seeding demo data for %s ===\n", *userID)

	subjects := []*model.Subject{
		{Name: "Mathematics", Teacher: "Mr. Smith", ColorCode: 1},
		{Name: "History", Teacher: "Mrs. Jones", ColorCode: 4},
	}

	for _, sub := range subjects {
		if err := subjectRepo.Create(ctx, *userID, sub); err != nil {
			log.Fatal().Err(err).Str("subject", sub.Name).Msg("Failed to seed subject")
		}
		fmt.Printf("Subject %q -> %s\n", sub.Name, sub.ID)

		lesson := &model.Lesson{
			SubjectID: sub.ID,
			Week:      "A",
			Day:       2,
			Starts:    "08:00",
			Ends:      "09:00",
			Location:  "Room 12",
		}
		if err := lessonRepo.Create(ctx, *userID, lesson); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed lesson")
		}

		due := time.Now().Add(7 * 24 * time.Hour).Unix()
		task := &model.Task{
			Name:      "Homework: " + sub.Name,
			Type:      model.TaskTypeAssignment,
			SubjectID: sub.ID,
			DueDate:   due,
		}
		if err := taskRepo.Create(ctx, *userID, task); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed task")
		}

		exam := &model.Exam{
			Name:      sub.Name + " midterm",
			SubjectID: sub.ID,
			DueDate:   due,
		}
		if err := examRepo.Create(ctx, *userID, exam); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed exam")
		}
	}

	fmt.Println("Done.")
}
