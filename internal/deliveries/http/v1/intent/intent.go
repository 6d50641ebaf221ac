package intent

import (
	nethttp "net/http"

	"github.com/sovr-labs/go-fp-clearing/internal/common/http"
	"github.com/sovr-labs/go-fp-clearing/internal/common/validation"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/services"

	"github.com/labstack/echo/v4"
)

type intentHandler struct {
	intentSvc services.IntentService
}

// New intent handler will initialize the intents/ resources endpoint
func New(app *echo.Group, intentSvc services.IntentService) {
	handler := intentHandler{
		intentSvc: intentSvc,
	}
	api := app.Group("/intents")
	api.POST("", handler.submitIntent)
	api.GET("/:intent_id", handler.getIntent)
}

// submitIntent API submit intent
// @Summary Submit a payment or payroll intent
// @Description Runs the intent through the attestation gate and clearing. A repeated idempotencyKey returns the stored outcome.
// @Tags Intents
// @Accept  json
// @Produce  json
// @Param body body models.SubmitIntentRequest true "body"
// @Success 202 {object} models.IntentAccepted
// @Success 200 {object} models.IntentAccepted "duplicate idempotency key"
// @Failure 400 {object} http.RestErrorResponseModel
// @Failure 409 {object} models.IntentRejected
// @Failure 422 {object} models.IntentRejected
// @Failure 503 {object} models.IntentRejected
// @Router /v1/intents [post]
func (h *intentHandler) submitIntent(c echo.Context) error {
	req := new(models.SubmitIntentRequest)

	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	rec, duplicate, err := h.intentSvc.Submit(c.Request().Context(), *req)
	if err != nil {
		if rec == nil {
			return http.RestDomainErrorResponse(c, err)
		}
		detail := models.GetErrMap(err)
		return http.RestSuccessResponse(c, detail.HTTPStatus, rejected(rec))
	}

	if duplicate {
		if isRejected(rec.Status) {
			return http.RestSuccessResponse(c, nethttp.StatusOK, rejected(rec))
		}
		return http.RestSuccessResponse(c, nethttp.StatusOK, rec.ToAccepted(true))
	}

	return http.RestSuccessResponse(c, nethttp.StatusAccepted, rec.ToAccepted(false))
}

// getIntent API get intent
// @Summary Get an intent outcome
// @Tags Intents
// @Produce  json
// @Param intent_id path string true "intent id"
// @Success 200 {object} models.IntentAccepted
// @Failure 404 {object} http.RestErrorResponseModel
// @Router /v1/intents/{intent_id} [get]
func (h *intentHandler) getIntent(c echo.Context) error {
	rec, err := h.intentSvc.Get(c.Request().Context(), c.Param("intent_id"))
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	if isRejected(rec.Status) {
		return http.RestSuccessResponse(c, nethttp.StatusOK, rejected(rec))
	}
	return http.RestSuccessResponse(c, nethttp.StatusOK, rec.ToAccepted(false))
}

func isRejected(status models.IntentStatus) bool {
	return status == models.IntentStatusRejected || status == models.IntentStatusFailed
}

func rejected(rec *models.IntentRecord) models.IntentRejected {
	return models.IntentRejected{
		Kind:       "intent",
		IntentID:   rec.ID,
		ReasonCode: rec.ReasonCode,
		Reason:     rec.Reason,
	}
}
