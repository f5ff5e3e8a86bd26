package service

import (
	"context"
	"errors"
	"time"

	"zakat-tracker/domain"
)

type MockCalculationRepository struct {
	Saved      []domain.CalculationRecord
	SaveCalled bool
	ForceError bool
}

func (m *MockCalculationRepository) Save(_ context.Context, record domain.CalculationRecord) error {
	m.SaveCalled = true
	if m.ForceError {
		return errors.New("save error")
	}
	m.Saved = append(m.Saved, record)
	return nil
}

func (m *MockCalculationRepository) ListByUser(_ context.Context, userID string, limit int) ([]domain.CalculationRecord, error) {
	out := []domain.CalculationRecord{}
	for i := len(m.Saved) - 1; i >= 0; i-- {
		if m.Saved[i].UserID == userID {
			out = append(out, m.Saved[i])
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type MockNisabProvider struct {
	Ref   domain.NisabReference
	Err   error
	Calls int
}

func (m *MockNisabProvider) Current(_ context.Context) (domain.NisabReference, error) {
	m.Calls++
	return m.Ref, m.Err
}

type FailingCache struct{}

func (FailingCache) Get(context.Context, string) (string, bool) { return "", false }

func (FailingCache) Set(context.Context, string, string, time.Duration) error {
	return errors.New("cache down")
}
