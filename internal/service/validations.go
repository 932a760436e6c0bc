package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/limbo/starboard/internal/error_values"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// Errors reported for specific request fields instead of the generic message.
var fieldErrors = map[string]error{
	"TaskIDs":  errorvalues.ErrEmptyTaskIDs,
	"RewardID": errorvalues.ErrEmptyRewardID,
}

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
}

func validateRequest(req any) error {
	InitValidator()
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: validation unexpected error: %s", errorvalues.ErrInternal, err.Error())
	}
	errs := make([]error, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		if known, ok := fieldErrors[fieldErr.Field()]; ok {
			errs = append(errs, known)
			continue
		}
		errs = append(errs, fmt.Errorf("%w: field %s failed on %q", errorvalues.ErrValidation, fieldErr.Field(), fieldErr.Tag()))
	}
	return errors.Join(errs...)
}
