package models

import "time"

// ConnectRequest is the body sent after a user scans the wallet QR code
type ConnectRequest struct {
	UserID          string `json:"userId"`
	TransactionHash string `json:"transactionHash"`
}

// Connection links a chat user to the transaction that proved wallet ownership
type Connection struct {
	UserID          string    `json:"userId"`
	TransactionHash string    `json:"transactionHash"`
	ConnectedAt     time.Time `json:"connectedAt"`
}
