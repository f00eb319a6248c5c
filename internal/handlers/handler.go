// internal/handlers/handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juggernaut03/kalakritBackend/internal/i18n"
	"github.com/juggernaut03/kalakritBackend/internal/utils"
)

// bindJSON decodes the body into req and writes the error response itself
// when decoding fails. Validation happens in the services.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	lang := utils.GetLangFromContext(c)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE",
			i18n.T(lang, i18n.KeyBodyTooLarge, tooLarge.Limit>>20), nil)
		return false
	}

	var details interface{}
	if utils.ExposeErrors(c) {
		details = err.Error()
	}
	utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyInvalidRequest, "body"), details)
	return false
}

// currentUser returns the identity set by the auth middleware.
func currentUser(c *gin.Context) (userID, role string, ok bool) {
	userID, ok = utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return "", "", false
	}
	role, _ = utils.GetRoleFromContext(c)
	return userID, role, true
}
