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

	// ErrInvalidDeployment is returned when deployment data is invalid
	ErrInvalidDeployment = errors.New("invalid deployment")

	// ErrChainMismatch is returned when the deployment context was recorded on another chain
	ErrChainMismatch = errors.New("chain id mismatch")

	// ErrContractNotFound is returned when a contract can't be found in the compiler output
	ErrContractNotFound = errors.New("contract not found")

	// ErrStaleArtifact is returned when an artifact write would not advance numDeployments by one
	ErrStaleArtifact = errors.New("stale artifact version")

	// ErrSlotNotFound is returned when a storage layout has no matching field
	ErrSlotNotFound = errors.New("storage slot not found")

	// ErrCorruptArtifact is returned when an artifact or compiler output file can't be decoded
	ErrCorruptArtifact = errors.New("corrupt artifact")
)

// InvalidDeploymentReason describes why a save was rejected
type InvalidDeploymentReason string

const (
	ReasonEmptyName     InvalidDeploymentReason = "EmptyName"
	ReasonAlreadyExists InvalidDeploymentReason = "AlreadyExists"
	ReasonUnusableName  InvalidDeploymentReason = "UnusableName"
)

type InvalidDeploymentError struct {
	Name   string
	Reason InvalidDeploymentReason
}

func (e *InvalidDeploymentError) Error() string {
	if e.Reason == ReasonEmptyName {
		return "invalid deployment: EmptyName"
	}
	return fmt.Sprintf("invalid deployment %q: %s", e.Name, e.Reason)
}

func (e *InvalidDeploymentError) Unwrap() error {
	return ErrInvalidDeployment
}

// DeploymentDoesNotExistError is returned when a name resolves to nothing
type DeploymentDoesNotExistError struct {
	Name        string
	Suggestions []string
}

func (e *DeploymentDoesNotExistError) Error() string {
	msg := fmt.Sprintf("deployment %q does not exist", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *DeploymentDoesNotExistError) Unwrap() error {
	return ErrNotFound
}

type ChainMismatchError struct {
	Context  string
	Recorded uint64
	Current  uint64
}

func (e *ChainMismatchError) Error() string {
	return fmt.Sprintf("deployment context %q was recorded on chain %d but current chain is %d",
		e.Context, e.Recorded, e.Current)
}

func (e *ChainMismatchError) Unwrap() error {
	return ErrChainMismatch
}
