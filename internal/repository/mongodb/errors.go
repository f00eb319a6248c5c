// internal/repository/mongodb/errors.go
package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/juggernaut03/kalakritBackend/internal/apperrors"
)

// translate maps driver errors onto apperrors kinds.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperrors.Wrap(apperrors.ErrNotFound, "", err)
	case mongo.IsDuplicateKeyError(err):
		return apperrors.Wrap(apperrors.ErrConflict, "", err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
