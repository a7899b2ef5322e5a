package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/stkrfx/digitaloffices-1/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error   string        `json:"error"`
	Details []FieldDetail `json:"details,omitempty"`
}

type FieldDetail struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Error sends a JSON error response with the status code of the error's kind.
// Errors that are not AppErrors are reported as 500 without leaking their text;
// the cause is attached to the gin context so the request logger records it.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Kind != apperror.KindInternal {
		c.JSON(appErr.Kind.HTTPStatus(), ErrorResponse{Error: appErr.Message})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// BindError reports a request that failed binding or tag validation with 422.
func BindError(c *gin.Context, err error) {
	resp := ErrorResponse{Error: "invalid request"}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			resp.Details = append(resp.Details, FieldDetail{Field: fe.Field(), Rule: fe.Tag()})
		}
	} else {
		resp.Details = []FieldDetail{{Field: "body", Rule: err.Error()}}
	}

	c.JSON(http.StatusUnprocessableEntity, resp)
}

// InvalidField reports a single field that passed binding but failed a request rule, with 422.
func InvalidField(c *gin.Context, field, rule string) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "invalid request",
		Details: []FieldDetail{{Field: field, Rule: rule}},
	})
}
