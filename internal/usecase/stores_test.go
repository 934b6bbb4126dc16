package usecase_test

import (
	"context"

	"github.com/omamori-labs/omamori/internal/domain"
	"github.com/omamori-labs/omamori/internal/domain/models"
)

func (s *memoryStores) SaveKYC(ctx context.Context, record *models.KYCRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kyc[record.LineUserID] = record
	return nil
}

func (s *memoryStores) GetKYC(ctx context.Context, lineUserID string) (*models.KYCRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.kyc[lineUserID]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (s *memoryStores) SaveConnection(ctx context.Context, conn *models.Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connections[conn.UserID] = conn
	return nil
}

func (s *memoryStores) GetConnection(ctx context.Context, userID string) (*models.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.connections[userID]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (s *memoryStores) SaveGoal(ctx context.Context, goal *models.SavingsGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *goal
	s.goals[goal.UserID] = &cp
	return nil
}

func (s *memoryStores) GetGoal(ctx context.Context, userID string) (*models.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.goals[userID]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (s *memoryStores) UpdateGoal(ctx context.Context, userID string, fn func(goal *models.SavingsGoal) error) (*models.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *g
	cp.Deposits = append([]models.Deposit(nil), g.Deposits...)
	if err := fn(&cp); err != nil {
		return nil, err
	}
	s.goals[userID] = &cp
	out := cp
	return &out, nil
}
