package evaluation

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"vrajamarii/internal/models"
)

var testUser = uuid.MustParse("5b3f8a8e-2d7c-4c11-9b7a-0f2a7b1c9e01")

// completeValues is a fully valid form with every rule inactive.
func completeValues() Values {
	v := Values{
		"first_name":    "Ana",
		"last_name":     "Pop",
		"age":           30,
		"date_of_birth": "1994-05-01",
		"blood_type":    "O+",
		"weight":        65.0,
		"height":        170.0,
	}
	for _, name := range YesNoFields() {
		v[name] = No
	}
	v["speaks_primary"] = Yes
	return v
}

// memStore upserts by user the way the repository does.
type memStore struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]*models.EvaluationRecord
	calls int
	err   error
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[uuid.UUID]*models.EvaluationRecord)}
}

func (s *memStore) UpsertEvaluation(_ context.Context, rec *models.EvaluationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.rows[rec.UserID] = rec
	return nil
}
