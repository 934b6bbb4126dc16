package cache

import (
	"context"
	"time"

	"github.com/omamori-labs/omamori/internal/domain"
	"github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/omamori-labs/omamori/internal/domain/models"
	"github.com/omamori-labs/omamori/internal/usecase"
	gocache "github.com/patrickmn/go-cache"
)

const (
	kycPrefix        = "kyc:"
	connectionPrefix = "qr:"
	cleanupInterval  = 10 * time.Minute
)

// StoreAdapter keeps KYC records and wallet connections in memory.
// KYC records expire with their verification; connections live for the
// process lifetime.
type StoreAdapter struct {
	cache  *gocache.Cache
	kycTTL time.Duration
}

// NewStoreAdapter creates a new in-memory store
func NewStoreAdapter(cfg *config.RuntimeConfig) *StoreAdapter {
	return &StoreAdapter{
		cache:  gocache.New(gocache.NoExpiration, cleanupInterval),
		kycTTL: cfg.OmamoriConfig.KYC.Validity.Duration,
	}
}

// SaveKYC stores a verification record until it expires
func (s *StoreAdapter) SaveKYC(ctx context.Context, record *models.KYCRecord) error {
	ttl := s.kycTTL
	if !record.ExpiresAt.IsZero() {
		ttl = time.Until(record.ExpiresAt)
		if ttl <= 0 {
			// already expired, nothing to keep
			s.cache.Delete(kycPrefix + record.LineUserID)
			return nil
		}
	}
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}

	cp := *record
	s.cache.Set(kycPrefix+record.LineUserID, &cp, ttl)
	return nil
}

// GetKYC returns the record of a chat user or domain.ErrNotFound
func (s *StoreAdapter) GetKYC(ctx context.Context, lineUserID string) (*models.KYCRecord, error) {
	v, ok := s.cache.Get(kycPrefix + lineUserID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *v.(*models.KYCRecord)
	return &cp, nil
}

// SaveConnection replaces the user's last connection
func (s *StoreAdapter) SaveConnection(ctx context.Context, conn *models.Connection) error {
	cp := *conn
	s.cache.Set(connectionPrefix+conn.UserID, &cp, gocache.NoExpiration)
	return nil
}

// GetConnection returns the user's last connection or domain.ErrNotFound
func (s *StoreAdapter) GetConnection(ctx context.Context, userID string) (*models.Connection, error) {
	v, ok := s.cache.Get(connectionPrefix + userID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *v.(*models.Connection)
	return &cp, nil
}

// Len returns the number of live entries
func (s *StoreAdapter) Len() int {
	return s.cache.ItemCount()
}

var (
	_ usecase.KYCStore        = (*StoreAdapter)(nil)
	_ usecase.ConnectionStore = (*StoreAdapter)(nil)
)
