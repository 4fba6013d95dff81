package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"juntos-mais-api/internal/apperrors"
	"juntos-mais-api/internal/logger"
)

func init() {
	// Report binding failures under the json field names clients actually sent.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindInvalidState:
		return http.StatusUnprocessableEntity
	case apperrors.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a domain error onto an HTTP response. Unexpected errors are
// logged and hidden behind a generic 500.
func writeError(c *gin.Context, log *logger.Logger, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		log.Error("unexpected error", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}
	if appErr.Kind == apperrors.KindUnavailable {
		log.Error("store unavailable", "error", appErr.Err, "path", c.Request.URL.Path)
	}
	body := gin.H{"error": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["details"] = appErr.Fields
	}
	c.JSON(statusFor(appErr.Kind), body)
}

// bindError converts gin binding failures into the per-field validation shape.
func bindError(err error) *apperrors.Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperrors.FieldError{
				Field:  fe.Field(),
				Reason: "Falha na validação: " + fe.Tag(),
			})
		}
		return apperrors.Validation(fields...)
	}
	return &apperrors.Error{Kind: apperrors.KindValidation, Message: "Requisição inválida: " + err.Error()}
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation(apperrors.FieldError{Field: name, Reason: "Identificador inválido"})
	}
	return id, nil
}
