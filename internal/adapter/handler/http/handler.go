package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"reflect"
	"slices"

	"github.com/MikeRez0/yporders/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

const (
	msgInternal        = "Internal server error"
	msgNotFound        = "Order not found"
	msgConflict        = "Order was modified concurrently, retry the request"
	msgBadRequest      = "Malformed request body"
	msgValidation      = "Validation error"
	msgBodyRequired    = "Request body is required"
	msgIDBodyRequired  = "Order ID and items are required"
	msgPublishFailed   = "payment request publish failed"
	msgUnexpectedError = "error processing request"
)

// errorStatus is checked in order: a publish error may wrap a storage error.
var errorStatus = []struct {
	err     error
	status  int
	message string
}{
	{domain.ErrPublish, http.StatusInternalServerError, msgInternal},
	{domain.ErrInternal, http.StatusInternalServerError, msgInternal},
	{domain.ErrValidation, http.StatusBadRequest, msgValidation},
	{domain.ErrBadRequest, http.StatusBadRequest, msgBadRequest},
	{domain.ErrDataNotFound, http.StatusNotFound, msgNotFound},
	{domain.ErrConflictingData, http.StatusConflict, msgConflict},
}

type jsonDecimal decimal.Decimal

func (j jsonDecimal) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(j).String()), nil
}

type response struct {
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Details []domain.FieldError `json:"details,omitempty"`
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// handleError maps err to a status code. Unknown and server-side errors are
// logged and answered without detail.
func (h *Handler) handleError(ctx *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	message := msgInternal
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			statusCode = e.status
			message = e.message
			break
		}
	}

	if statusCode >= http.StatusInternalServerError {
		logMsg := msgUnexpectedError
		if errors.Is(err, domain.ErrPublish) {
			logMsg = msgPublishFailed
		}
		h.logger.Error(logMsg,
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Error(err))
	}

	resp := response{Message: message}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp.Details = ve.Fields
	}

	ctx.AbortWithStatusJSON(statusCode, resp)
}

func (h *Handler) handleBadRequest(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, response{Message: message})
}

func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, message string, data any, status int) {
	ctx.JSON(status, response{Message: message, Data: data})
}

func (h *Handler) handleSuccess(ctx *gin.Context, message string, data any) {
	h.handleSuccessWithStatus(ctx, message, data, http.StatusOK)
}

// bindJSON binds a JSON object body into dst. It reports empty for an absent,
// blank or {} body. Every field of the wrong JSON type comes back as one entry
// of a *domain.ValidationError; the remaining fields are still bound.
func bindJSON(ctx *gin.Context, dst any) (bool, error) {
	if ctx.Request.Body == nil {
		return true, nil
	}
	raw, err := ctx.GetRawData()
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return true, nil
	}

	var members map[string]json.RawMessage
	if err := binding.JSON.BindBody(raw, &members); err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}
	if len(members) == 0 {
		return true, nil
	}

	err = binding.JSON.BindBody(raw, dst)
	if err == nil {
		return false, nil
	}
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return false, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}

	// the decoder keeps only the first type error, so bind members one by one
	fields := make([]domain.FieldError, 0, len(members))
	target := reflect.TypeOf(dst).Elem()
	for _, name := range slices.Sorted(maps.Keys(members)) {
		body, err := json.Marshal(map[string]json.RawMessage{name: members[name]})
		if err != nil {
			return false, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
		}
		err = binding.JSON.BindBody(body, reflect.New(target).Interface())
		if err == nil {
			continue
		}
		if !errors.As(err, &typeErr) {
			return false, fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
		}
		field := typeErr.Field
		if field == "" {
			field = name
		}
		fields = append(fields, domain.FieldError{
			Field:   field,
			Message: "must be " + jsonTypeName(typeErr.Type),
		})
	}
	return false, domain.NewValidationError(fields...)
}

// mergeFieldErrors appends the entries of extra whose field is not reported yet.
func mergeFieldErrors(reported *domain.ValidationError, extra error) error {
	if extra == nil {
		return reported
	}
	var ve *domain.ValidationError
	if !errors.As(extra, &ve) {
		return extra
	}

	fields := slices.Clone(reported.Fields)
	for _, f := range ve.Fields {
		seen := slices.ContainsFunc(fields, func(r domain.FieldError) bool {
			return r.Field == f.Field
		})
		if !seen {
			fields = append(fields, f)
		}
	}
	return domain.NewValidationError(fields...)
}

func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "a list"
	default:
		return "an object"
	}
}
