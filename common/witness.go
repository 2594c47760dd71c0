package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

var (
	// ErrOwnerWitnessFailed appears when the method must be called
	// by an owner of some assets but was not.
	ErrOwnerWitnessFailed = "owner witness check failed"
	// ErrAuthorityWitnessFailed appears when the method must be called
	// by the minting authority of the contract but was not.
	ErrAuthorityWitnessFailed = "minting authority witness check failed"
)

// CheckOwnerWitness checks witness of the passed caller.
// It panics with ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(caller []byte) {
	checkWitnessWithPanic(caller, ErrOwnerWitnessFailed)
}

// CheckAuthorityWitness checks witness of the passed caller.
// It panics with ErrAuthorityWitnessFailed message on fail.
func CheckAuthorityWitness(caller []byte) {
	checkWitnessWithPanic(caller, ErrAuthorityWitnessFailed)
}

func checkWitnessWithPanic(caller []byte, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}

// IsValidHash160 returns true if the provided address is a valid Uint160.
func IsValidHash160(address interop.Hash160) bool {
	return address != nil && len(address) == interop.Hash160Len
}
