package request

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// HHMM matches a 24-hour wall clock time such as "09:00" or "23:59".
var HHMM = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// RegisterValidators adds the custom binding tags used by request DTOs.
// It is safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return HHMM.MatchString(fl.Field().String())
	})
}
