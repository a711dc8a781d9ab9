// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Turn protocol errors
	CodeNotYourTurn  Code = "NOT_YOUR_TURN"
	CodeInvalidPhase Code = "INVALID_PHASE"

	// Session errors
	CodeSessionNotActive         Code = "SESSION_NOT_ACTIVE"
	CodeSessionEmptyName         Code = "SESSION_EMPTY_NAME"
	CodeSessionInvalidTransition Code = "SESSION_INVALID_STATUS_TRANSITION"

	// Roster errors
	CodeRosterInvalid   Code = "ROSTER_INVALID"
	CodePlayerEmptyName Code = "PLAYER_EMPTY_NAME"
	CodePlayerNotFound  Code = "PLAYER_NOT_FOUND"

	// Board errors
	CodeTileNotFound Code = "TILE_NOT_FOUND"
	CodeBoardInvalid Code = "BOARD_INVALID"

	// Storage errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"

	// Dice/mechanics errors
	CodeDiceMissing     Code = "DICE_MISSING"
	CodeDiceInvalidSpec Code = "DICE_INVALID_SPEC"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeSessionEmptyName,
		CodePlayerEmptyName,
		CodeRosterInvalid,
		CodeBoardInvalid,
		CodeDiceMissing,
		CodeDiceInvalidSpec:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeNotYourTurn,
		CodeInvalidPhase,
		CodeSessionNotActive,
		CodeSessionInvalidTransition:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound,
		CodePlayerNotFound,
		CodeTileNotFound:
		return codes.NotFound

	// AlreadyExists - uniqueness violations
	case CodeAlreadyExists:
		return codes.AlreadyExists

	default:
		return codes.Internal
	}
}
