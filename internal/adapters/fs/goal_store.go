package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/omamori-labs/omamori/internal/domain"
	"github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/omamori-labs/omamori/internal/domain/models"
	"github.com/omamori-labs/omamori/internal/usecase"
)

// GoalsFile is the savings goal file inside the data directory
const GoalsFile = "goals.json"

// GoalStoreAdapter keeps savings goals in a JSON file keyed by user id
type GoalStoreAdapter struct {
	path string
	mu   sync.Mutex
}

// NewGoalStoreAdapter creates a new GoalStoreAdapter
func NewGoalStoreAdapter(cfg *config.RuntimeConfig) *GoalStoreAdapter {
	return &GoalStoreAdapter{
		path: filepath.Join(cfg.DataDir, GoalsFile),
	}
}

// GetGoal returns the goal of userID or domain.ErrNotFound
func (s *GoalStoreAdapter) GetGoal(ctx context.Context, userID string) (*models.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.load()
	if err != nil {
		return nil, err
	}

	goal, ok := goals[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return goal, nil
}

// SaveGoal stores the goal, replacing the user's previous one
func (s *GoalStoreAdapter) SaveGoal(ctx context.Context, goal *models.SavingsGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.load()
	if err != nil {
		return err
	}
	goals[goal.UserID] = goal
	return s.save(goals)
}

// UpdateGoal reads, modifies and writes the user's goal under one lock
func (s *GoalStoreAdapter) UpdateGoal(ctx context.Context, userID string, fn func(goal *models.SavingsGoal) error) (*models.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.load()
	if err != nil {
		return nil, err
	}

	goal, ok := goals[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := fn(goal); err != nil {
		return nil, err
	}

	if err := s.save(goals); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalStoreAdapter) save(goals map[string]*models.SavingsGoal) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return writeJSON(s.path, goals)
}

func (s *GoalStoreAdapter) load() (map[string]*models.SavingsGoal, error) {
	goals := make(map[string]*models.SavingsGoal)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return goals, nil
		}
		return nil, fmt.Errorf("failed to read goals: %w", err)
	}

	if err := json.Unmarshal(data, &goals); err != nil {
		return nil, fmt.Errorf("failed to parse goals: %w", err)
	}
	return goals, nil
}

var _ usecase.GoalStore = (*GoalStoreAdapter)(nil)
