package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"tenant-booking/internal/dto/request"
	"tenant-booking/internal/usecase"
	"tenant-booking/pkg/utils"

	"go.uber.org/zap"
)

// errorBody is the errors payload of a rejected request.
type errorBody struct {
	Code usecase.Kind `json:"code"`
}

var kindStatus = map[usecase.Kind]int{
	usecase.KindUnauthenticated:    http.StatusUnauthorized,
	usecase.KindPermissionDenied:   http.StatusForbidden,
	usecase.KindInvalidArgument:    http.StatusBadRequest,
	usecase.KindNotFound:           http.StatusNotFound,
	usecase.KindFailedPrecondition: http.StatusConflict,
	usecase.KindInternal:           http.StatusInternalServerError,
}

// StatusFor maps an error kind to its HTTP status code.
func StatusFor(kind usecase.Kind) int {
	if code, ok := kindStatus[kind]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// writeError responds with the kind's status. Internal causes are logged, never sent.
func writeError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	kind := usecase.KindOf(err)
	body := errorBody{Code: kind}

	if kind == usecase.KindInternal {
		cause := err
		if inner := errors.Unwrap(err); inner != nil {
			cause = inner
		}
		log.Error(operation+" failed", zap.Error(cause), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error", body)
		return
	}

	log.Warn(operation+" rejected",
		zap.String("kind", string(kind)),
		zap.String("reason", err.Error()),
		zap.String("operation", operation),
	)

	switch kind {
	case usecase.KindUnauthenticated:
		utils.ResponseUnauthorized(w, err.Error(), body)
	case usecase.KindPermissionDenied:
		utils.ResponseForbidden(w, err.Error(), body)
	case usecase.KindInvalidArgument:
		utils.ResponseBadRequest(w, err.Error(), body)
	case usecase.KindNotFound:
		utils.ResponseNotFound(w, err.Error(), body)
	case usecase.KindFailedPrecondition:
		utils.ResponseConflict(w, err.Error(), body)
	}
}

// decodeJSON answers 400 for a body that is not valid JSON for dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", errorBody{Code: usecase.KindInvalidArgument})
		return false
	}
	return true
}

func identityFrom(r *http.Request) *utils.Identity {
	return utils.GetIdentity(r.Context())
}

// callerFrom answers 401 when the request carries no identity. Write handlers
// call it before reading the body.
func callerFrom(w http.ResponseWriter, r *http.Request, log *zap.Logger, operation string) (*utils.Identity, bool) {
	identity := identityFrom(r)
	if identity == nil {
		writeError(w, log, usecase.Unauthenticated("authentication required"), operation)
		return nil, false
	}
	return identity, true
}

func paginationFrom(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: min(utils.ParseInt(query.Get("perPage"), 10), 100),
	}
}
