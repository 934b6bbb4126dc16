package usecase_test

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/omamori-labs/omamori/internal/domain"
	"github.com/omamori-labs/omamori/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSavingsGoals(t *testing.T) {
	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		uc := usecase.NewSavingsGoals(newMemoryStores(), usecase.NewNotifier(new(MockMessenger), discardLogger()), newFakeClock(), discardLogger())

		_, err := uc.Set(ctx, usecase.SetSavingsGoalParams{Name: "Trip", Target: 1})
		assert.True(t, domain.IsValidation(err))

		_, err = uc.Set(ctx, usecase.SetSavingsGoalParams{UserID: "U1", Name: "Trip"})
		assert.True(t, domain.IsValidation(err))

		past := newFakeClock().Now().Add(-time.Hour)
		_, err = uc.Set(ctx, usecase.SetSavingsGoalParams{UserID: "U1", Name: "Trip", Target: 1, Deadline: &past})
		assert.True(t, domain.IsValidation(err))

		_, err = uc.Deposit(ctx, usecase.RecordDepositParams{UserID: "U1", Amount: 0})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("deposit without goal", func(t *testing.T) {
		uc := usecase.NewSavingsGoals(newMemoryStores(), usecase.NewNotifier(new(MockMessenger), discardLogger()), newFakeClock(), discardLogger())
		_, err := uc.Deposit(ctx, usecase.RecordDepositParams{UserID: "U1", Amount: 5})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("progress is capped and reached flips at target", func(t *testing.T) {
		clock := newFakeClock()
		messenger := new(MockMessenger)
		messenger.On("Push", mock.Anything, "U1", mock.AnythingOfType("string")).Return(nil).Once()

		notifier := usecase.NewNotifier(messenger, discardLogger())
		uc := usecase.NewSavingsGoals(newMemoryStores(), notifier, clock, discardLogger())

		deadline := clock.Now().Add(30 * 24 * time.Hour)
		status, err := uc.Set(ctx, usecase.SetSavingsGoalParams{
			UserID:   "U1",
			Name:     "Kyoto trip",
			Token:    "usdc",
			Decimals: 6,
			Target:   100_000_000,
			Deadline: &deadline,
		})
		require.NoError(t, err)
		assert.Equal(t, "USDC", status.Goal.Token)
		assert.Equal(t, float64(0), status.Percent)
		require.NotNil(t, status.DaysLeft)
		assert.Equal(t, 30, *status.DaysLeft)

		status, err = uc.Deposit(ctx, usecase.RecordDepositParams{UserID: "U1", Amount: 40_000_000})
		require.NoError(t, err)
		assert.InDelta(t, 40.0, status.Percent, 0.0001)
		assert.Equal(t, uint64(60_000_000), status.Remaining)
		assert.False(t, status.Reached)

		status, err = uc.Deposit(ctx, usecase.RecordDepositParams{UserID: "U1", Amount: 59_999_999})
		require.NoError(t, err)
		assert.False(t, status.Reached)
		assert.Equal(t, uint64(1), status.Remaining)

		status, err = uc.Deposit(ctx, usecase.RecordDepositParams{UserID: "U1", Amount: 1, TxHash: "0xabc"})
		require.NoError(t, err)
		assert.True(t, status.Reached)
		assert.Equal(t, float64(100), status.Percent)

		status, err = uc.Deposit(ctx, usecase.RecordDepositParams{UserID: "U1", Amount: 50_000_000})
		require.NoError(t, err)
		assert.Equal(t, float64(100), status.Percent)
		assert.Equal(t, uint64(0), status.Remaining)
		assert.Len(t, status.Goal.Deposits, 4)

		shown, err := uc.Show(ctx, "U1")
		require.NoError(t, err)
		assert.Equal(t, uint64(150_000_000), shown.Goal.Saved)

		// congratulated exactly once
		notifier.Wait()
		messenger.AssertNumberOfCalls(t, "Push", 1)
	})
	t.Run("concurrent deposits are all counted", func(t *testing.T) {
		messenger := new(MockMessenger)
		messenger.On("Push", mock.Anything, "U1", mock.AnythingOfType("string")).Return(nil).Once()
		notifier := usecase.NewNotifier(messenger, discardLogger())
		uc := usecase.NewSavingsGoals(newMemoryStores(), notifier, newFakeClock(), discardLogger())

		_, err := uc.Set(ctx, usecase.SetSavingsGoalParams{UserID: "U1", Name: "Trip", Target: 200})
		require.NoError(t, err)

		const workers = 200
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := uc.Deposit(ctx, usecase.RecordDepositParams{UserID: "U1", Amount: 1})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		status, err := uc.Show(ctx, "U1")
		require.NoError(t, err)
		assert.Equal(t, uint64(workers), status.Goal.Saved)
		assert.Len(t, status.Goal.Deposits, workers)
		assert.True(t, status.Reached)

		// exactly one deposit crossed the target
		notifier.Wait()
		messenger.AssertExpectations(t)
	})

	t.Run("overflow leaves the goal unchanged", func(t *testing.T) {
		uc := usecase.NewSavingsGoals(newMemoryStores(), usecase.NewNotifier(new(MockMessenger), discardLogger()), newFakeClock(), discardLogger())

		_, err := uc.Set(ctx, usecase.SetSavingsGoalParams{UserID: "U1", Name: "Trip", Target: math.MaxUint64})
		require.NoError(t, err)
		_, err = uc.Deposit(ctx, usecase.RecordDepositParams{UserID: "U1", Amount: math.MaxUint64 - 1})
		require.NoError(t, err)

		_, err = uc.Deposit(ctx, usecase.RecordDepositParams{UserID: "U1", Amount: 2})
		assert.True(t, domain.IsValidation(err))

		status, err := uc.Show(ctx, "U1")
		require.NoError(t, err)
		assert.Equal(t, uint64(math.MaxUint64-1), status.Goal.Saved)
		assert.Len(t, status.Goal.Deposits, 1)
		assert.False(t, status.Reached)
		assert.Less(t, status.Percent, 100.0)
	})
}
