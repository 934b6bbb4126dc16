package models

import (
	"math/big"
	"time"
)

// Deposit is a single contribution towards a savings goal
type Deposit struct {
	Amount uint64    `json:"amount" yaml:"amount"`
	TxHash string    `json:"txHash,omitempty" yaml:"txHash,omitempty"`
	At     time.Time `json:"at" yaml:"at"`
}

// SavingsGoal tracks progress towards a target amount, in token base units
type SavingsGoal struct {
	UserID    string     `json:"userId" yaml:"userId"`
	Name      string     `json:"name" yaml:"name"`
	Token     string     `json:"token" yaml:"token"`
	Decimals  uint8      `json:"decimals" yaml:"decimals"`
	Target    uint64     `json:"target" yaml:"target"`
	Saved     uint64     `json:"saved" yaml:"saved"`
	Deadline  *time.Time `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	CreatedAt time.Time  `json:"createdAt" yaml:"createdAt"`
	Deposits  []Deposit  `json:"deposits" yaml:"deposits"`
}

// percentScale keeps six decimal places of a percentage
const percentScale = 100_000_000

// Percent returns progress in the range 0..100. The value is truncated so it
// only reaches 100 once the goal is reached.
func (g *SavingsGoal) Percent() float64 {
	if g.Saved >= g.Target {
		return 100
	}
	scaled := new(big.Int).SetUint64(g.Saved)
	scaled.Mul(scaled, big.NewInt(percentScale))
	scaled.Quo(scaled, new(big.Int).SetUint64(g.Target))
	return float64(scaled.Uint64()) / (percentScale / 100)
}

// Remaining returns how much is left to save
func (g *SavingsGoal) Remaining() uint64 {
	if g.Saved >= g.Target {
		return 0
	}
	return g.Target - g.Saved
}

// Reached reports whether the target has been met
func (g *SavingsGoal) Reached() bool {
	return g.Saved >= g.Target
}

// GoalStatus is a point-in-time view of a savings goal
type GoalStatus struct {
	Goal      *SavingsGoal `json:"goal" yaml:"goal"`
	Percent   float64      `json:"percent" yaml:"percent"`
	Remaining uint64       `json:"remaining" yaml:"remaining"`
	Reached   bool         `json:"reached" yaml:"reached"`
	DaysLeft  *int         `json:"daysLeft,omitempty" yaml:"daysLeft,omitempty"`
}
