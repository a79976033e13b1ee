package millionaire

import (
	"context"
	"errors"
	"log"
	"strconv"

	apperrors "github.com/louisbranch/millionaire/internal/platform/errors"
	"github.com/louisbranch/millionaire/internal/services/millionaire/api/grpc/metadata"
	"github.com/louisbranch/millionaire/internal/services/millionaire/domain/game"
	"github.com/louisbranch/millionaire/internal/services/millionaire/domain/question"
	"github.com/louisbranch/millionaire/internal/services/millionaire/gameplay"
	"github.com/louisbranch/millionaire/internal/services/millionaire/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps gameplay errors to gRPC statuses carrying a localized
// message. Unrecognized errors are logged and reported as Internal.
func toStatus(ctx context.Context, err error, meta map[string]string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}
	if errors.Is(err, storage.ErrInvalidPageToken) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	domainErr := domainError(err, meta)
	if domainErr == nil {
		log.Printf("request %s: %v", metadata.RequestIDFromContext(ctx), err)
		return status.Error(codes.Internal, "internal error")
	}
	return domainErr.ToGRPCStatus(metadata.LocaleFromContext(ctx))
}

func domainError(err error, meta map[string]string) *apperrors.Error {
	var (
		inProgress   *game.GameInProgressError
		insufficient *question.InsufficientError
	)
	switch {
	case errors.As(err, &inProgress):
		return apperrors.WrapWithMetadata(apperrors.CodeGameInProgress, err.Error(),
			map[string]string{"GameID": inProgress.GameID}, err)
	case errors.Is(err, game.ErrGameAlreadyFinished):
		return apperrors.Wrap(apperrors.CodeGameAlreadyFinished, err.Error(), err)
	case errors.Is(err, question.ErrInvalidAnswerKey):
		return apperrors.WrapWithMetadata(apperrors.CodeInvalidAnswerKey, err.Error(), meta, err)
	case errors.As(err, &insufficient):
		return apperrors.WrapWithMetadata(apperrors.CodeInsufficientQuestions, err.Error(),
			map[string]string{"Level": strconv.Itoa(insufficient.Level)}, err)
	case errors.Is(err, question.ErrInsufficientQuestions):
		return apperrors.Wrap(apperrors.CodeInsufficientQuestions, err.Error(), err)
	case errors.Is(err, gameplay.ErrGameNotFound):
		return apperrors.Wrap(apperrors.CodeNotFound, err.Error(), err)
	case errors.Is(err, gameplay.ErrUserNotFound):
		return apperrors.Wrap(apperrors.CodeUserNotFound, err.Error(), err)
	case errors.Is(err, gameplay.ErrUserIDRequired):
		return apperrors.Wrap(apperrors.CodeUserIDMissing, err.Error(), err)
	case errors.Is(err, gameplay.ErrUserNameRequired):
		return apperrors.Wrap(apperrors.CodeUserNameEmpty, err.Error(), err)
	default:
		return nil
	}
}
