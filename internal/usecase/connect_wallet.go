package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/omamori-labs/omamori/internal/domain"
	"github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/omamori-labs/omamori/internal/domain/models"
	"github.com/omamori-labs/omamori/pkg/format"
)

// ConnectedMessage is returned once a wallet connection is recorded
const ConnectedMessage = "Wallet connected successfully"

// ConnectWallet records that a chat user proved wallet ownership by
// scanning the QR code and sending a transaction
type ConnectWallet struct {
	config    *config.RuntimeConfig
	store     ConnectionStore
	notifier  *Notifier
	clock     Clock
	log       *slog.Logger
}

// NewConnectWallet creates a new ConnectWallet use case
func NewConnectWallet(cfg *config.RuntimeConfig, store ConnectionStore, notifier *Notifier, clock Clock, log *slog.Logger) *ConnectWallet {
	return &ConnectWallet{
		config:    cfg,
		store:     store,
		notifier:  notifier,
		clock:     clock,
		log:       log,
	}
}

// Run validates the request, waits the confirmation delay and stores the connection
func (uc *ConnectWallet) Run(ctx context.Context, req models.ConnectRequest) (*models.Connection, error) {
	userID := strings.TrimSpace(req.UserID)
	txHash := strings.TrimSpace(req.TransactionHash)
	if userID == "" {
		return nil, domain.ValidationError{Field: "userId"}
	}
	if txHash == "" {
		return nil, domain.ValidationError{Field: "transactionHash"}
	}

	if err := uc.clock.Sleep(ctx, uc.config.OmamoriConfig.Server.QRDelay.Duration); err != nil {
		return nil, err
	}

	conn := &models.Connection{
		UserID:          userID,
		TransactionHash: txHash,
		ConnectedAt:     uc.clock.Now().UTC(),
	}
	if err := uc.store.SaveConnection(ctx, conn); err != nil {
		return nil, fmt.Errorf("failed to store connection: %w", err)
	}
	uc.log.Info("wallet connected", "userId", userID, "tx", txHash)

	uc.notifier.Notify(userID, fmt.Sprintf("🔗 Wallet connected (tx %s)", format.ShortenAddress(txHash)))

	return conn, nil
}

// GetConnection looks up the last wallet connection of a user
type GetConnection struct {
	store ConnectionStore
}

// NewGetConnection creates a new GetConnection use case
func NewGetConnection(store ConnectionStore) *GetConnection {
	return &GetConnection{store: store}
}

// Run returns the stored connection or domain.ErrNotFound
func (uc *GetConnection) Run(ctx context.Context, userID string) (*models.Connection, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.ValidationError{Field: "userId"}
	}
	return uc.store.GetConnection(ctx, userID)
}
