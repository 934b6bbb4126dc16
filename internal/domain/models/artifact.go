package models

import "github.com/ethereum/go-ethereum/accounts/abi"

// Artifact is a compiled contract: its ABI and creation bytecode
type Artifact struct {
	Name     string
	Path     string
	ABI      abi.ABI
	Bytecode []byte
}
