package adaptor

import (
	"net/http"
	"strings"

	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service errors onto HTTP responses by message.
// Code failures deliberately collapse into one 400 so callers cannot tell a
// wrong code from an expired or never-issued one.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case usecase.IsCodeError(err):
		log.Warn(operation+" failed - invalid code", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid or expired code", nil)

	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "already registered"),
		strings.Contains(errMsg, "already verified"):
		log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid credentials"):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "deactivated"),
		strings.Contains(errMsg, "not verified"):
		log.Warn(operation+" failed - account state", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
