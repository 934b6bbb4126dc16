package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// KYC statuses and levels
const (
	KYCStatusVerified = "verified"
	KYCLevelBasic     = "basic"
)

// UserData is the identity payload submitted with a KYC request
type UserData struct {
	FullName       string `json:"fullName,omitempty"`
	DateOfBirth    string `json:"dateOfBirth,omitempty"`
	Nationality    string `json:"nationality,omitempty"`
	DocumentType   string `json:"documentType,omitempty"`
	DocumentNumber string `json:"documentNumber,omitempty"`
	WalletAddress  string `json:"walletAddress,omitempty"`
}

// KYCRequest is the body of a KYC submission. userData is kept raw: any
// non-null value counts as submitted, recognized fields are read from it.
type KYCRequest struct {
	LineUserID string          `json:"lineUserId"`
	UserData   json.RawMessage `json:"userData"`
}

// HasUserData reports whether userData was sent with a non-null value
func (r KYCRequest) HasUserData() bool {
	data := bytes.TrimSpace(r.UserData)
	return len(data) > 0 && !bytes.Equal(data, []byte("null"))
}

// Identity decodes the recognized userData fields. Unknown keys and
// non-object payloads yield the zero value.
func (r KYCRequest) Identity() UserData {
	var u UserData
	if r.HasUserData() {
		_ = json.Unmarshal(r.UserData, &u)
	}
	return u
}

// KYCRecord is the result of a (mock) verification
type KYCRecord struct {
	ID            string    `json:"id"`
	LineUserID    string    `json:"lineUserId"`
	Status        string    `json:"status"`
	Level         string    `json:"level"`
	WalletAddress string    `json:"walletAddress,omitempty"`
	SubmittedAt   time.Time `json:"submittedAt"`
	VerifiedAt    time.Time `json:"verifiedAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}
