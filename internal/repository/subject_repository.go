// Package repository maps entity operations onto document-store paths.
// Ownership and parent scoping are encoded in the path itself:
// {collection}/{userId}/{subjectId}/{id}.
package repository

import (
	"context"
	"fmt"

	"github.com/milan-codes/studician-api/internal/model"
	"github.com/milan-codes/studician-api/internal/store"
)

type SubjectRepository struct {
	store *store.Client
}

func NewSubjectRepository(st *store.Client) *SubjectRepository {
	return &SubjectRepository{store: st}
}

func subjectPath(userID, subjectID string) string {
	return fmt.Sprintf("subjects/%s/%s", userID, subjectID)
}

// Create assigns a fresh key to s and writes it under the owner's subtree.
func (r *SubjectRepository) Create(ctx context.Context, userID string, s *model.Subject) error {
	s.ID = r.store.NewKey()
	return r.store.Set(ctx, subjectPath(userID, s.ID), s)
}

// ListByUser returns all subjects of a user keyed by id. An owner with no
// subjects yields an empty map, not an error.
func (r *SubjectRepository) ListByUser(ctx context.Context, userID string) (map[string]model.Subject, error) {
	subjects := make(map[string]model.Subject)
	if _, err := r.store.Get(ctx, "subjects/"+userID, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// Get performs a point read. The second return is false when the subject
// does not exist.
func (r *SubjectRepository) Get(ctx context.Context, userID, subjectID string) (*model.Subject, bool, error) {
	var s model.Subject
	found, err := r.store.Get(ctx, subjectPath(userID, subjectID), &s)
	if err != nil || !found {
		return nil, false, err
	}
	return &s, true, nil
}

// Exists reports whether the subject is present, without decoding it.
func (r *SubjectRepository) Exists(ctx context.Context, userID, subjectID string) (bool, error) {
	return r.store.Exists(ctx, subjectPath(userID, subjectID))
}

// Replace overwrites the subject's addressable fields. The path id wins
// over whatever id the payload carried.
func (r *SubjectRepository) Replace(ctx context.Context, userID, subjectID string, s *model.Subject) error {
	s.ID = subjectID
	return r.store.Set(ctx, subjectPath(userID, subjectID), s)
}

// Delete removes the subject record only; cascading over dependents is the
// service's job.
func (r *SubjectRepository) Delete(ctx context.Context, userID, subjectID string) error {
	return r.store.Delete(ctx, subjectPath(userID, subjectID))
}
