package transfer

import (
	nethttp "net/http"

	"github.com/sovr-labs/go-fp-clearing/internal/common/http"
	"github.com/sovr-labs/go-fp-clearing/internal/common/http/middleware"
	"github.com/sovr-labs/go-fp-clearing/internal/services"

	"github.com/labstack/echo/v4"
)

type transferHandler struct {
	clearingSvc services.ClearingService
}

// New transfer handler will initialize the transfers/ resources endpoint
func New(app *echo.Group, clearingSvc services.ClearingService, m middleware.AppMiddleware) {
	handler := transferHandler{
		clearingSvc: clearingSvc,
	}
	api := app.Group("/transfers")
	api.GET("/:transfer_id", handler.lookup)
	api.GET("/:transfer_id/status", handler.status)
	api.POST("/:transfer_id/confirm", handler.confirm, m.CheckIdempotentRequest())
	api.POST("/:transfer_id/cancel", handler.cancel, m.CheckIdempotentRequest())
}

// lookup API lookup transfer
// @Summary Get the clearing result of a transfer
// @Tags Transfers
// @Produce  json
// @Param transfer_id path string true "transfer id"
// @Success 200 {object} models.ClearingResult
// @Failure 404 {object} http.RestErrorResponseModel
// @Router /v1/transfers/{transfer_id} [get]
func (h *transferHandler) lookup(c echo.Context) error {
	res, err := h.clearingSvc.Lookup(c.Request().Context(), c.Param("transfer_id"))
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, res)
}

// status API transfer status
// @Summary Get the clearing state and honoring outcomes of a transfer
// @Tags Transfers
// @Produce  json
// @Param transfer_id path string true "transfer id"
// @Success 200 {object} models.TransferStatusView
// @Failure 404 {object} http.RestErrorResponseModel
// @Router /v1/transfers/{transfer_id}/status [get]
func (h *transferHandler) status(c echo.Context) error {
	res, err := h.clearingSvc.Status(c.Request().Context(), c.Param("transfer_id"))
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, res)
}

// confirm API confirm pending transfer
// @Summary Post a pending transfer
// @Tags Transfers
// @Produce  json
// @Param X-Idempotency-Key header string true "idempotency key"
// @Param transfer_id path string true "transfer id"
// @Success 200 {object} models.ClearingResult
// @Failure 404 {object} http.RestErrorResponseModel
// @Failure 409 {object} http.RestErrorResponseModel
// @Router /v1/transfers/{transfer_id}/confirm [post]
func (h *transferHandler) confirm(c echo.Context) error {
	res, err := h.clearingSvc.Confirm(c.Request().Context(), c.Param("transfer_id"))
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, res)
}

// cancel API cancel pending transfer
// @Summary Void a pending transfer
// @Tags Transfers
// @Produce  json
// @Param X-Idempotency-Key header string true "idempotency key"
// @Param transfer_id path string true "transfer id"
// @Success 200 {object} models.ClearingResult
// @Failure 404 {object} http.RestErrorResponseModel
// @Failure 409 {object} http.RestErrorResponseModel
// @Router /v1/transfers/{transfer_id}/cancel [post]
func (h *transferHandler) cancel(c echo.Context) error {
	res, err := h.clearingSvc.Cancel(c.Request().Context(), c.Param("transfer_id"))
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, res)
}
