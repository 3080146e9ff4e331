package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/domain/identity"
	"github.com/tsvs/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var (
	errEmailExists          = shared.NewDomainError("EMAIL_EXISTS", "Email already registered")
	errUserNotFound         = shared.NewDomainError("USER_NOT_FOUND", "User not found")
	errNotEnoughPermissions = shared.NewDomainError("FORBIDDEN", "Not enough permissions")
	errInvalidCredentials   = shared.NewDomainError("INVALID_CREDENTIALS", "Incorrect username or password")
	errCouldNotValidate     = shared.NewDomainError("UNAUTHORIZED", "Could not validate credentials")
)

// loadActor resolves the authenticated caller. A caller whose account
// was deleted or disabled after the token was issued is rejected.
func loadActor(ctx context.Context, repo identity.UserRepository, actorID uuid.UUID, logger *zap.Logger) (*identity.User, error) {
	actor, err := repo.FindActiveByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errCouldNotValidate
		}
		logger.Error("Failed to load caller", zap.String("actor_id", actorID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load caller")
	}
	return actor, nil
}

func userNotFoundOr(err error, message string, logger *zap.Logger) error {
	if errors.Is(err, shared.ErrNotFound) {
		return errUserNotFound
	}
	logger.Error(message, zap.Error(err))
	return shared.NewDomainError("INTERNAL_ERROR", message)
}

func publishEvents(ctx context.Context, publisher shared.EventPublisher, events []shared.DomainEvent, logger *zap.Logger) {
	if len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		// Log but don't fail the operation
		logger.Warn("Failed to publish user events", zap.Error(err))
	}
}
