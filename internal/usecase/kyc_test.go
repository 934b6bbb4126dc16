package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/omamori-labs/omamori/internal/domain"
	"github.com/omamori-labs/omamori/internal/domain/models"
	"github.com/omamori-labs/omamori/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func kycRequest(lineUserID, userData string) models.KYCRequest {
	req := models.KYCRequest{LineUserID: lineUserID}
	if userData != "" {
		req.UserData = json.RawMessage(userData)
	}
	return req
}

func TestSubmitKYC(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fields are validation errors", func(t *testing.T) {
		cfg := newTestConfig(t)
		uc := usecase.NewSubmitKYC(cfg, newMemoryStores(), usecase.NewNotifier(new(MockMessenger), discardLogger()), newFakeClock(), discardLogger())

		_, err := uc.Run(ctx, kycRequest("", `{"fullName":"Hanako"}`))
		var ve domain.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "lineUserId", ve.Field)

		_, err = uc.Run(ctx, kycRequest("U123", ""))
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "userData", ve.Field)

		_, err = uc.Run(ctx, kycRequest("U123", "null"))
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "userData", ve.Field)
	})

	t.Run("any present userData is accepted", func(t *testing.T) {
		cfg := newTestConfig(t)
		messenger := new(MockMessenger)
		messenger.On("Push", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		notifier := usecase.NewNotifier(messenger, discardLogger())
		uc := usecase.NewSubmitKYC(cfg, newMemoryStores(), notifier, newFakeClock(), discardLogger())

		for _, userData := range []string{`{"email":"a@b.jp","phone":"090"}`, `{}`, `"opaque"`} {
			record, err := uc.Run(ctx, kycRequest("U1", userData))
			require.NoError(t, err, userData)
			assert.Equal(t, models.KYCStatusVerified, record.Status)
			assert.Empty(t, record.WalletAddress)
		}
		notifier.Wait()
	})

	t.Run("approves after the verification delay", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.OmamoriConfig.Server.KYCDelay.Duration = 2 * time.Second

		stores := newMemoryStores()
		messenger := new(MockMessenger)
		messenger.On("Push", mock.Anything, "U123", mock.AnythingOfType("string")).Return(nil).Once()
		notifier := usecase.NewNotifier(messenger, discardLogger())
		clock := newFakeClock()
		start := clock.Now()

		uc := usecase.NewSubmitKYC(cfg, stores, notifier, clock, discardLogger())
		record, err := uc.Run(ctx, kycRequest(" U123 ",
			`{"fullName":"Hanako Yamada","walletAddress":"0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"}`))
		require.NoError(t, err)

		assert.NotEmpty(t, record.ID)
		assert.Equal(t, "U123", record.LineUserID)
		assert.Equal(t, models.KYCStatusVerified, record.Status)
		assert.Equal(t, models.KYCLevelBasic, record.Level)
		assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", record.WalletAddress)
		assert.Equal(t, start, record.SubmittedAt)
		assert.Equal(t, start.Add(2*time.Second), record.VerifiedAt)
		assert.Equal(t, record.VerifiedAt.Add(cfg.OmamoriConfig.KYC.Validity.Duration), record.ExpiresAt)
		assert.Equal(t, []time.Duration{2 * time.Second}, clock.sleeps)

		stored, err := usecase.NewGetKYC(stores).Run(ctx, "U123")
		require.NoError(t, err)
		assert.Equal(t, record.ID, stored.ID)

		notifier.Wait()
		messenger.AssertExpectations(t)
	})

	t.Run("notification failure is not fatal", func(t *testing.T) {
		cfg := newTestConfig(t)
		messenger := new(MockMessenger)
		messenger.On("Push", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("line unavailable"))
		notifier := usecase.NewNotifier(messenger, discardLogger())

		uc := usecase.NewSubmitKYC(cfg, newMemoryStores(), notifier, newFakeClock(), discardLogger())
		_, err := uc.Run(ctx, kycRequest("U1", `{"fullName":"A"}`))
		assert.NoError(t, err)

		notifier.Wait()
		messenger.AssertNumberOfCalls(t, "Push", 1)
	})

	t.Run("slow messenger does not hold the response", func(t *testing.T) {
		cfg := newTestConfig(t)
		release := make(chan time.Time)
		messenger := new(MockMessenger)
		messenger.On("Push", mock.Anything, "U1", mock.Anything).
			WaitUntil(release).
			Return(nil)
		notifier := usecase.NewNotifier(messenger, discardLogger())

		uc := usecase.NewSubmitKYC(cfg, newMemoryStores(), notifier, newFakeClock(), discardLogger())

		done := make(chan error, 1)
		go func() {
			_, err := uc.Run(ctx, kycRequest("U1", `{"fullName":"A"}`))
			done <- err
		}()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("kyc response waited for the messenger")
		}

		close(release)
		notifier.Wait()
		messenger.AssertExpectations(t)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cfg := newTestConfig(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		uc := usecase.NewSubmitKYC(cfg, newMemoryStores(), usecase.NewNotifier(new(MockMessenger), discardLogger()), newFakeClock(), discardLogger())
		_, err := uc.Run(cctx, kycRequest("U1", `{"fullName":"A"}`))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGetKYC(t *testing.T) {
	uc := usecase.NewGetKYC(newMemoryStores())

	_, err := uc.Run(context.Background(), "")
	assert.True(t, domain.IsValidation(err))

	_, err = uc.Run(context.Background(), "U404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConnectWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fields", func(t *testing.T) {
		cfg := newTestConfig(t)
		uc := usecase.NewConnectWallet(cfg, newMemoryStores(), usecase.NewNotifier(new(MockMessenger), discardLogger()), newFakeClock(), discardLogger())

		_, err := uc.Run(ctx, models.ConnectRequest{TransactionHash: "0xabc"})
		var ve domain.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "userId", ve.Field)

		_, err = uc.Run(ctx, models.ConnectRequest{UserID: "U1"})
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "transactionHash", ve.Field)
	})

	t.Run("records connection", func(t *testing.T) {
		cfg := newTestConfig(t)
		stores := newMemoryStores()
		messenger := new(MockMessenger)
		messenger.On("Push", mock.Anything, "U1", "🔗 Wallet connected (tx 0x8f3a…91be)").Return(nil)
		notifier := usecase.NewNotifier(messenger, discardLogger())
		clock := newFakeClock()

		uc := usecase.NewConnectWallet(cfg, stores, notifier, clock, discardLogger())
		conn, err := uc.Run(ctx, models.ConnectRequest{
			UserID:          "U1",
			TransactionHash: "0x8f3a5b1c9d2e4f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c691be",
		})
		require.NoError(t, err)
		assert.Equal(t, "U1", conn.UserID)
		assert.Equal(t, []time.Duration{cfg.OmamoriConfig.Server.QRDelay.Duration}, clock.sleeps)

		got, err := usecase.NewGetConnection(stores).Run(ctx, "U1")
		require.NoError(t, err)
		assert.Equal(t, conn.TransactionHash, got.TransactionHash)

		notifier.Wait()
		messenger.AssertExpectations(t)
	})
}

func TestNotifier_Timeout(t *testing.T) {
	var pushCtx context.Context
	messenger := new(MockMessenger)
	messenger.On("Push", mock.Anything, "U1", "hi").
		Run(func(args mock.Arguments) {
			pushCtx = args.Get(0).(context.Context)
			<-pushCtx.Done()
		}).
		Return(context.DeadlineExceeded)

	notifier := usecase.NewNotifier(messenger, discardLogger()).WithTimeout(20 * time.Millisecond)
	notifier.Notify("U1", "hi")
	notifier.Wait()

	require.NotNil(t, pushCtx)
	assert.ErrorIs(t, pushCtx.Err(), context.DeadlineExceeded)
}
