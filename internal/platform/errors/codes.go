// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Game errors
	CodeGameInProgress      Code = "GAME_IN_PROGRESS"
	CodeGameAlreadyFinished Code = "GAME_ALREADY_FINISHED"
	CodeInvalidAnswerKey    Code = "INVALID_ANSWER_KEY"

	// Question pool errors
	CodeInsufficientQuestions Code = "INSUFFICIENT_QUESTIONS"

	// Player errors
	CodeUserIDMissing Code = "USER_ID_MISSING"
	CodeUserNotFound  Code = "USER_NOT_FOUND"
	CodeUserNameEmpty Code = "USER_NAME_EMPTY"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeInvalidAnswerKey,
		CodeUserNameEmpty:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeGameAlreadyFinished,
		CodeInsufficientQuestions:
		return codes.FailedPrecondition

	// AlreadyExists - one active game per player
	case CodeGameInProgress:
		return codes.AlreadyExists

	// NotFound - resource doesn't exist
	case CodeNotFound,
		CodeUserNotFound:
		return codes.NotFound

	case CodeUserIDMissing:
		return codes.Unauthenticated

	default:
		return codes.Internal
	}
}
