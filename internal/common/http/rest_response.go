package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"github.com/hashicorp/go-multierror"
	"github.com/labstack/echo/v4"
)

type (
	RestErrorResponseModel struct {
		Status  string `json:"status" example:"error"`
		Code    any    `json:"code"`
		Message string `json:"message" example:"error"`
	}

	RestPaginationResponseModel[T any] struct {
		Kind       string           `json:"kind" example:"collection"`
		Contents   T                `json:"contents"`
		Pagination CursorPagination `json:"pagination"`
	}

	RestErrorValidationResponseModel struct {
		Status  string `json:"status" example:"error"`
		Message string `json:"message" example:"validation error"`
		Errors  any    `json:"errors"`
	}
)

func RestSuccessResponse(c echo.Context, code int, in any) error {
	return c.JSON(code, in)
}

// RestSuccessResponseCursorPagination trims the over-fetched row and renders
// the remaining items with the next cursor.
func RestSuccessResponseCursorPagination[ModelResponse any, S ~[]E, E PaginateableContent[ModelResponse]](c echo.Context, data S, requestLimit int) error {
	hasMorePages := requestLimit > 0 && len(data) > requestLimit
	if hasMorePages {
		data = data[:requestLimit]
	}

	contents := make([]ModelResponse, 0, len(data))
	for _, datum := range data {
		contents = append(contents, datum.ToModelResponse())
	}

	return c.JSON(http.StatusOK, RestPaginationResponseModel[[]ModelResponse]{
		Kind:       "collection",
		Contents:   contents,
		Pagination: NewCursorPagination[ModelResponse](c, data, hasMorePages),
	})
}

// RestErrorResponse renders err. A mapped domain error overrides the code and
// message; the status code passed in always wins.
func RestErrorResponse(c echo.Context, statusCode int, err error) error {
	res := RestErrorResponseModel{
		Status:  "error",
		Code:    statusCode,
		Message: err.Error(),
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		res.Code = echoErr.Code
		res.Message = fmt.Sprint(echoErr.Message)
	}

	var data models.ErrorDetail
	if errors.As(err, &data) {
		res.Code = data.Code
		res.Message = data.ErrorMessage.Error()
	}

	return c.JSON(statusCode, res)
}

// RestDomainErrorResponse resolves status and reason code from the error map.
func RestDomainErrorResponse(c echo.Context, err error) error {
	detail := models.GetErrMap(err)
	return RestErrorResponse(c, detail.HTTPStatus, detail)
}

func RestErrorValidationResponse(c echo.Context, err error) error {
	res := RestErrorValidationResponseModel{
		Status:  "error",
		Message: common.ErrValidation.Error(),
	}

	var merr *multierror.Error
	if errors.As(err, &merr) {
		res.Errors = merr.Errors
	} else if err != nil {
		res.Errors = []string{err.Error()}
	}

	return c.JSON(http.StatusUnprocessableEntity, res)
}
