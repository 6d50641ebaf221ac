package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
)

var (
	validate = validator.New()

	ledgerCodePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]{1,15}$`)
)

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				continue
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	registerNoSpecialCharacters()
	registerNoSpacesAtStartOrEnd()
	registerIntentKind()
	registerPositiveAmount()
	registerLedgerCode()
}

// ValidateStruct returns nil or a *multierror.Error of ErrorValidateResponse.
func ValidateStruct(toValidate any) error {
	err := validate.Struct(toValidate)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return multierror.Append(nil, ErrorValidateResponse{Message: err.Error()})
	}

	var (
		errs    *multierror.Error
		valErrs validator.ValidationErrors
	)
	if errors.As(err, &valErrs) {
		for _, valErr := range valErrs {
			errs = multierror.Append(errs, toResponse(valErr))
		}
	}

	return errs.ErrorOrNil()
}

func toResponse(valErr validator.FieldError) ErrorValidateResponse {
	if resp, found := fieldCodes[fmt.Sprintf("%s_%s", valErr.Field(), valErr.Tag())]; found {
		resp.Field = valErr.Field()
		return resp
	}

	return ErrorValidateResponse{
		Code:    "INVALID_" + strings.ToUpper(valErr.Tag()),
		Field:   valErr.Field(),
		Message: strings.TrimSpace(fmt.Sprintf("%s %s", valErr.Tag(), valErr.Param())),
	}
}

// Responses flattens an error produced by ValidateStruct.
func Responses(err error) []ErrorValidateResponse {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return nil
	}

	out := make([]ErrorValidateResponse, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		var resp ErrorValidateResponse
		if errors.As(e, &resp) {
			out = append(out, resp)
		}
	}
	return out
}

func registerNoSpecialCharacters() {
	pattern := regexp.MustCompile("^[a-zA-Z0-9 ]*$")
	validate.RegisterValidation("nospecial", func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	})
}

func registerNoSpacesAtStartOrEnd() {
	validate.RegisterValidation("noStartEndSpaces", func(fl validator.FieldLevel) bool {
		str := fl.Field().String()
		return str == strings.TrimSpace(str)
	})
}

func registerIntentKind() {
	validate.RegisterValidation("intent_kind", func(fl validator.FieldLevel) bool {
		return models.IntentKind(fl.Field().String()).IsValid()
	})
}

func registerPositiveAmount() {
	validate.RegisterValidation("positive_amount", func(fl validator.FieldLevel) bool {
		amount, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		if err != nil {
			return false
		}
		return amount.IsPositive()
	})
}

func registerLedgerCode() {
	validate.RegisterValidation("ledger_code", func(fl validator.FieldLevel) bool {
		return ledgerCodePattern.MatchString(fl.Field().String())
	})
}
