package handler

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pesio-ai/be-ops-workflow/pkg/auth"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
	"github.com/pesio-ai/be-ops-workflow/pkg/logger"
)

const maxJSONBody = 1 << 20

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	Field   string      `json:"field,omitempty"`
}

// httpStatus maps an error code to its HTTP status.
func httpStatus(code errors.Code) int {
	switch code {
	case errors.ErrCodeValidation:
		return http.StatusBadRequest
	case errors.ErrCodeUnauthenticated:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden:
		return http.StatusForbidden
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidState, errors.ErrCodeConflict:
		return http.StatusConflict
	case errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// grpcCode maps an error code to its gRPC status code.
func grpcCode(code errors.Code) codes.Code {
	switch code {
	case errors.ErrCodeValidation:
		return codes.InvalidArgument
	case errors.ErrCodeUnauthenticated:
		return codes.Unauthenticated
	case errors.ErrCodeForbidden:
		return codes.PermissionDenied
	case errors.ErrCodeNotFound:
		return codes.NotFound
	case errors.ErrCodeInvalidState:
		return codes.FailedPrecondition
	case errors.ErrCodeConflict:
		return codes.AlreadyExists
	case errors.ErrCodeUnavailable:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// mapErrorToGRPC converts a service error into a gRPC status. Internal
// details are not exposed to callers.
func mapErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		if _, coded := errors.As(err); !coded {
			return err
		}
	}
	code := errors.CodeOf(err)
	return status.Error(grpcCode(code), publicMessage(err))
}

func publicMessage(err error) string {
	e, ok := errors.As(err)
	if !ok || e.Code == errors.ErrCodeInternal {
		return "internal error"
	}
	return e.Message
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err as {"error":{...}} with the status for its code.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	code := errors.CodeOf(err)
	body := errorBody{Code: code, Message: publicMessage(err)}
	if e, ok := errors.As(err); ok {
		body.Field = e.Field
	}

	status := httpStatus(code)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("code", string(code)).Msg("Request failed")
	}
	writeJSON(w, status, map[string]errorBody{"error": body})
}

// decodeJSON reads a JSON body, rejecting unknown fields and trailing data.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case stderrors.As(err, &typeErr):
			return errors.InvalidInput(typeErr.Field, "invalid value for "+typeErr.Field)
		case stderrors.As(err, &syntaxErr), stderrors.Is(err, io.ErrUnexpectedEOF):
			return errors.InvalidInput("", "malformed JSON body")
		case stderrors.Is(err, io.EOF):
			return errors.InvalidInput("", "request body is required")
		default:
			return errors.InvalidInput("", err.Error())
		}
	}
	if dec.More() {
		return errors.InvalidInput("", "request body must contain a single JSON object")
	}
	return nil
}

func allowMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}

func requireID(r *http.Request) (string, error) {
	id := r.URL.Query().Get("id")
	if id == "" {
		return "", errors.InvalidInput("id", "id is required")
	}
	return id, nil
}

func optionalQuery(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}

// maxPage keeps (page-1)*pageSize well inside int32 offsets.
const maxPage = 1_000_000

// pagination reads page (1-based) and page_size, returning limit and offset.
func pagination(r *http.Request) (page, pageSize, limit, offset int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}
	return page, pageSize, pageSize, (page - 1) * pageSize
}

// actor returns the authenticated caller.
func actor(r *http.Request) (*auth.UserContext, error) {
	return auth.GetUserContext(r.Context())
}
