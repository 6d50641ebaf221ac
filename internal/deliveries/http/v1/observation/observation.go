package observation

import (
	nethttp "net/http"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common/http"
	"github.com/sovr-labs/go-fp-clearing/internal/common/pagination"
	"github.com/sovr-labs/go-fp-clearing/internal/common/validation"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/services"

	"github.com/labstack/echo/v4"
)

type observationHandler struct {
	observationSvc services.ObservationService
	maxLimit       int
}

// New observation handler will initialize the read-only observations/
// resources endpoint
func New(app *echo.Group, observationSvc services.ObservationService, maxLimit int) {
	if maxLimit <= 0 {
		maxLimit = pagination.DefaultLimit
	}
	handler := observationHandler{
		observationSvc: observationSvc,
		maxLimit:       maxLimit,
	}
	api := app.Group("/observations")
	api.GET("/accounts/:account_id/balance", handler.balance)
	api.GET("/accounts/:account_id/history", handler.history)
	api.GET("/transfers/:transfer_id", handler.transferObservations)
}

// balance API mirror balance
// @Summary Get the mirrored balance of an account
// @Tags Observations
// @Produce  json
// @Param account_id path string true "account id"
// @Success 200 {object} models.BalanceOut
// @Failure 422 {object} http.RestErrorResponseModel
// @Router /v1/observations/accounts/{account_id}/balance [get]
func (h *observationHandler) balance(c echo.Context) error {
	accountID := c.Param("account_id")

	res, err := h.observationSvc.BalanceOf(c.Request().Context(), accountID)
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, models.BalanceOut{
		Kind:      "balance",
		AccountID: accountID,
		Balance:   res,
		AsOf:      time.Now().UTC(),
	})
}

// history API account history
// @Summary Get the mirrored history of an account
// @Tags Observations
// @Produce  json
// @Param account_id path string true "account id"
// @Param from query string false "RFC3339 lower bound, inclusive"
// @Param to query string false "RFC3339 upper bound, exclusive"
// @Param limit query int false "page size"
// @Param cursor query string false "next cursor"
// @Success 200 {object} http.RestPaginationResponseModel[[]models.ObservationOut]
// @Failure 400 {object} http.RestErrorResponseModel
// @Router /v1/observations/accounts/{account_id}/history [get]
func (h *observationHandler) history(c echo.Context) error {
	req := new(models.HistoryRequest)

	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	filter, err := req.ToFilter(c.Param("account_id"), h.maxLimit)
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	page, err := h.observationSvc.History(c.Request().Context(), filter)
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	contents := make([]models.ObservationOut, 0, len(page.Records))
	for _, r := range page.Records {
		contents = append(contents, r.ToModelResponse())
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, http.RestPaginationResponseModel[[]models.ObservationOut]{
		Kind:     "collection",
		Contents: contents,
		Pagination: http.CursorPagination{
			Prev: req.Cursor,
			Next: page.NextCursor,
		},
	})
}

// transferObservations API transfer observations
// @Summary Get every mirror record of a transfer, corrections included
// @Tags Observations
// @Produce  json
// @Param transfer_id path string true "transfer id"
// @Success 200 {array} models.ObservationOut
// @Router /v1/observations/transfers/{transfer_id} [get]
func (h *observationHandler) transferObservations(c echo.Context) error {
	set, err := h.observationSvc.Observations(c.Request().Context(), c.Param("transfer_id"))
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	contents := make([]models.ObservationOut, 0, len(set))
	for _, r := range set {
		contents = append(contents, r.ToModelResponse())
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, contents)
}
