package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/omamori-labs/omamori/internal/domain"
	"github.com/omamori-labs/omamori/internal/domain/models"
	"github.com/omamori-labs/omamori/pkg/format"
)

// SetSavingsGoalParams describes a new savings goal
type SetSavingsGoalParams struct {
	UserID   string
	Name     string
	Token    string
	Decimals uint8
	Target   uint64
	Deadline *time.Time
}

// RecordDepositParams describes a contribution
type RecordDepositParams struct {
	UserID string
	Amount uint64
	TxHash string
}

// SavingsGoals manages a user's savings goal
type SavingsGoals struct {
	store     GoalStore
	notifier  *Notifier
	clock     Clock
	log       *slog.Logger
}

// NewSavingsGoals creates a new SavingsGoals use case
func NewSavingsGoals(store GoalStore, notifier *Notifier, clock Clock, log *slog.Logger) *SavingsGoals {
	return &SavingsGoals{
		store:     store,
		notifier:  notifier,
		clock:     clock,
		log:       log,
	}
}

// Set creates or replaces the user's goal. Progress starts from zero.
func (uc *SavingsGoals) Set(ctx context.Context, params SetSavingsGoalParams) (*models.GoalStatus, error) {
	userID := strings.TrimSpace(params.UserID)
	if userID == "" {
		return nil, domain.ValidationError{Field: "userId"}
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, domain.ValidationError{Field: "name"}
	}
	if params.Target == 0 {
		return nil, domain.ValidationError{Field: "target", Reason: "must be greater than zero"}
	}

	now := uc.clock.Now().UTC()
	if params.Deadline != nil && !params.Deadline.After(now) {
		return nil, domain.ValidationError{Field: "deadline", Reason: "must be in the future"}
	}

	goal := &models.SavingsGoal{
		UserID:    userID,
		Name:      strings.TrimSpace(params.Name),
		Token:     strings.ToUpper(params.Token),
		Decimals:  params.Decimals,
		Target:    params.Target,
		Deadline:  params.Deadline,
		CreatedAt: now,
		Deposits:  []models.Deposit{},
	}
	if err := uc.store.SaveGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to save goal: %w", err)
	}

	uc.log.Info("savings goal set", "userId", userID, "target", goal.Target, "token", goal.Token)
	return uc.status(goal), nil
}

// Deposit adds a contribution and reports the new progress. Crossing the
// target sends a congratulation message.
func (uc *SavingsGoals) Deposit(ctx context.Context, params RecordDepositParams) (*models.GoalStatus, error) {
	if params.Amount == 0 {
		return nil, domain.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	userID := strings.TrimSpace(params.UserID)
	if userID == "" {
		return nil, domain.ValidationError{Field: "userId"}
	}

	var wasReached bool
	goal, err := uc.store.UpdateGoal(ctx, userID, func(goal *models.SavingsGoal) error {
		if goal.Saved+params.Amount < goal.Saved {
			return domain.ValidationError{Field: "amount", Reason: "overflows the saved balance"}
		}
		wasReached = goal.Reached()
		goal.Saved += params.Amount
		goal.Deposits = append(goal.Deposits, models.Deposit{
			Amount: params.Amount,
			TxHash: params.TxHash,
			At:     uc.clock.Now().UTC(),
		})
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("no savings goal for %s: %w", userID, domain.ErrNotFound)
		case domain.IsValidation(err):
			return nil, err
		default:
			return nil, fmt.Errorf("failed to save goal: %w", err)
		}
	}

	if !wasReached && goal.Reached() {
		msg := fmt.Sprintf("🎉 You reached your goal \"%s\": %s %s saved!",
			goal.Name, format.Units(goal.Saved, goal.Decimals), goal.Token)
		uc.notifier.Notify(goal.UserID, msg)
	}

	return uc.status(goal), nil
}

// Show returns the current progress of the user's goal
func (uc *SavingsGoals) Show(ctx context.Context, userID string) (*models.GoalStatus, error) {
	goal, err := uc.get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.status(goal), nil
}

func (uc *SavingsGoals) get(ctx context.Context, userID string) (*models.SavingsGoal, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.ValidationError{Field: "userId"}
	}

	goal, err := uc.store.GetGoal(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no savings goal for %s: %w", userID, domain.ErrNotFound)
		}
		return nil, err
	}
	return goal, nil
}

func (uc *SavingsGoals) status(goal *models.SavingsGoal) *models.GoalStatus {
	status := &models.GoalStatus{
		Goal:      goal,
		Percent:   goal.Percent(),
		Remaining: goal.Remaining(),
		Reached:   goal.Reached(),
	}
	if goal.Deadline != nil {
		days := format.DaysLeft(uc.clock.Now(), *goal.Deadline)
		status.DaysLeft = &days
	}
	return status
}
