// internal/services/validation.go
package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/juggernaut03/kalakritBackend/internal/apperrors"
	"github.com/juggernaut03/kalakritBackend/internal/i18n"
	"github.com/juggernaut03/kalakritBackend/internal/utils"
)

// validate runs struct validation and turns failures into a Validation
// error carrying per-field details.
func validate(req interface{}) error {
	err := utils.ValidateStruct(req)
	if err == nil {
		return nil
	}

	details := utils.GetValidationErrors(err)
	if len(details) == 0 {
		return apperrors.Wrap(apperrors.ErrValidation, i18n.KeyInvalidRequest, err, "input")
	}
	return apperrors.Validation(i18n.KeyInvalidRequest, "input").WithDetails(details)
}

func parseID(id, resource string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation(i18n.KeyInvalidID, resource)
	}
	return oid, nil
}
