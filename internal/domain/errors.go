package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidChainID is returned when a chain ID is invalid
	ErrInvalidChainID = errors.New("invalid chain ID")

	// ErrNoNetwork is returned when an operation needs a network and none was selected
	ErrNoNetwork = errors.New("no network selected")

	// ErrMissingToken is returned when the vault token address is not configured
	ErrMissingToken = errors.New("vault token address not configured")

	// ErrVerificationFailed is returned when deployed code can't be found on-chain
	ErrVerificationFailed = errors.New("verification failed")

	// ErrDeploymentFailed is returned when a deployment transaction reverts
	ErrDeploymentFailed = errors.New("deployment failed")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// UnknownProfileErr is returned when a deployment profile can't be resolved.
type UnknownProfileErr struct {
	Name        string
	Suggestions []string
}

func (e UnknownProfileErr) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown deployment profile '%s'", e.Name)
	}
	return fmt.Sprintf("unknown deployment profile '%s', did you mean: %s?",
		e.Name, strings.Join(e.Suggestions, ", "))
}
