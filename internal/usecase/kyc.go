package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/omamori-labs/omamori/internal/domain"
	"github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/omamori-labs/omamori/internal/domain/models"
)

// SubmitKYC runs the mock identity verification: wait, then approve
type SubmitKYC struct {
	config    *config.RuntimeConfig
	store     KYCStore
	notifier  *Notifier
	clock     Clock
	log       *slog.Logger
}

// NewSubmitKYC creates a new SubmitKYC use case
func NewSubmitKYC(cfg *config.RuntimeConfig, store KYCStore, notifier *Notifier, clock Clock, log *slog.Logger) *SubmitKYC {
	return &SubmitKYC{
		config:    cfg,
		store:     store,
		notifier:  notifier,
		clock:     clock,
		log:       log,
	}
}

// Run validates the request, waits the verification delay and stores an approved record
func (uc *SubmitKYC) Run(ctx context.Context, req models.KYCRequest) (*models.KYCRecord, error) {
	lineUserID := strings.TrimSpace(req.LineUserID)
	if lineUserID == "" {
		return nil, domain.ValidationError{Field: "lineUserId"}
	}
	if !req.HasUserData() {
		return nil, domain.ValidationError{Field: "userData"}
	}

	submittedAt := uc.clock.Now().UTC()
	if err := uc.clock.Sleep(ctx, uc.config.OmamoriConfig.Server.KYCDelay.Duration); err != nil {
		return nil, err
	}
	verifiedAt := uc.clock.Now().UTC()

	record := &models.KYCRecord{
		ID:          uuid.NewString(),
		LineUserID:  lineUserID,
		Status:      models.KYCStatusVerified,
		Level:       models.KYCLevelBasic,
		SubmittedAt: submittedAt,
		VerifiedAt:  verifiedAt,
		ExpiresAt:   verifiedAt.Add(uc.config.OmamoriConfig.KYC.Validity.Duration),
	}
	if wallet := req.Identity().WalletAddress; wallet != "" {
		if common.IsHexAddress(wallet) {
			wallet = common.HexToAddress(wallet).Hex()
		}
		record.WalletAddress = wallet
	}

	if err := uc.store.SaveKYC(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store KYC record: %w", err)
	}
	uc.log.Info("kyc verified", "id", record.ID, "lineUserId", lineUserID)

	uc.notifier.Notify(lineUserID, "✅ Your identity verification is complete. Welcome to OMAMORI!")

	return record, nil
}

// GetKYC looks up the verification record of a chat user
type GetKYC struct {
	store KYCStore
}

// NewGetKYC creates a new GetKYC use case
func NewGetKYC(store KYCStore) *GetKYC {
	return &GetKYC{store: store}
}

// Run returns the stored record or domain.ErrNotFound
func (uc *GetKYC) Run(ctx context.Context, lineUserID string) (*models.KYCRecord, error) {
	lineUserID = strings.TrimSpace(lineUserID)
	if lineUserID == "" {
		return nil, domain.ValidationError{Field: "lineUserId"}
	}
	return uc.store.GetKYC(ctx, lineUserID)
}
