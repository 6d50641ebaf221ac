package binding

import (
	nethttp "net/http"

	"github.com/sovr-labs/go-fp-clearing/internal/common/http"
	"github.com/sovr-labs/go-fp-clearing/internal/common/http/middleware"
	"github.com/sovr-labs/go-fp-clearing/internal/common/validation"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/services"

	"github.com/labstack/echo/v4"
)

type bindingHandler struct {
	identitySvc services.IdentityService
}

// New binding handler will initialize the recipients/:recipient_id/bindings
// and bindings/ resources endpoint
func New(app *echo.Group, identitySvc services.IdentityService, m middleware.AppMiddleware) {
	handler := bindingHandler{
		identitySvc: identitySvc,
	}

	recipients := app.Group("/recipients/:recipient_id/bindings")
	recipients.POST("", handler.bind, m.CheckIdempotentRequest())
	recipients.GET("", handler.listBindings)
	recipients.PUT("/:binding_id/default", handler.setDefault)

	bindings := app.Group("/bindings")
	bindings.GET("/:binding_id", handler.getBinding)
	bindings.POST("/:binding_id/verify", handler.verify, m.CheckIdempotentRequest())
	bindings.POST("/:binding_id/review", handler.review, m.CheckIdempotentRequest())
}

// bind API bind recipient account
// @Summary Bind an external account to a recipient
// @Tags Bindings
// @Accept  json
// @Produce  json
// @Param X-Idempotency-Key header string true "idempotency key"
// @Param recipient_id path string true "recipient id"
// @Param body body models.BindRequest true "body"
// @Success 201 {object} models.BindingOut
// @Failure 409 {object} http.RestErrorResponseModel
// @Failure 422 {object} http.RestErrorValidationResponseModel
// @Router /v1/recipients/{recipient_id}/bindings [post]
func (h *bindingHandler) bind(c echo.Context) error {
	req := new(models.BindRequest)

	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	res, err := h.identitySvc.Bind(c.Request().Context(), *req)
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusCreated, res.ToBindingOut())
}

// listBindings API list recipient bindings
// @Summary List the bindings of a recipient
// @Tags Bindings
// @Produce  json
// @Param recipient_id path string true "recipient id"
// @Success 200 {array} models.BindingOut
// @Router /v1/recipients/{recipient_id}/bindings [get]
func (h *bindingHandler) listBindings(c echo.Context) error {
	res, err := h.identitySvc.ListBindings(c.Request().Context(), c.Param("recipient_id"))
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	data := make([]models.BindingOut, 0, len(res))
	for _, b := range res {
		data = append(data, b.ToBindingOut())
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, data)
}

// setDefault API set default binding
// @Summary Make a verified binding the recipient default
// @Tags Bindings
// @Param recipient_id path string true "recipient id"
// @Param binding_id path string true "binding id"
// @Success 204
// @Failure 404 {object} http.RestErrorResponseModel
// @Failure 422 {object} http.RestErrorResponseModel
// @Router /v1/recipients/{recipient_id}/bindings/{binding_id}/default [put]
func (h *bindingHandler) setDefault(c echo.Context) error {
	err := h.identitySvc.SetDefault(c.Request().Context(), c.Param("recipient_id"), c.Param("binding_id"))
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	return c.NoContent(nethttp.StatusNoContent)
}

// getBinding API get binding
// @Summary Get one binding
// @Tags Bindings
// @Produce  json
// @Param binding_id path string true "binding id"
// @Success 200 {object} models.BindingOut
// @Failure 404 {object} http.RestErrorResponseModel
// @Router /v1/bindings/{binding_id} [get]
func (h *bindingHandler) getBinding(c echo.Context) error {
	res, err := h.identitySvc.GetBinding(c.Request().Context(), c.Param("binding_id"))
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, res.ToBindingOut())
}

// verify API verify binding
// @Summary Verify a binding
// @Description INSTANT asks the verification provider, MICRO_DEPOSIT issues deposits on the first call and checks amounts on the next, MANUAL queues the binding for review.
// @Tags Bindings
// @Accept  json
// @Produce  json
// @Param X-Idempotency-Key header string true "idempotency key"
// @Param binding_id path string true "binding id"
// @Param body body models.VerifyRequest true "body"
// @Success 200 {object} models.BindingOut
// @Failure 409 {object} http.RestErrorResponseModel
// @Failure 410 {object} http.RestErrorResponseModel
// @Failure 422 {object} http.RestErrorResponseModel
// @Router /v1/bindings/{binding_id}/verify [post]
func (h *bindingHandler) verify(c echo.Context) error {
	req := new(models.VerifyRequest)

	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	evidence, err := req.ToEvidence()
	if err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	res, err := h.identitySvc.Verify(c.Request().Context(), c.Param("binding_id"), models.VerificationMethod(req.Method), evidence)
	if err != nil {
		// a failed confirmation still returns the binding so the caller sees the attempts left
		if res != nil {
			return http.RestSuccessResponse(c, models.GetErrMap(err).HTTPStatus, res.ToBindingOut())
		}
		return http.RestDomainErrorResponse(c, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, res.ToBindingOut())
}

// review API complete manual review
// @Summary Complete the manual review of a binding
// @Tags Bindings
// @Accept  json
// @Produce  json
// @Param X-Idempotency-Key header string true "idempotency key"
// @Param binding_id path string true "binding id"
// @Param body body models.ManualReviewRequest true "body"
// @Success 200 {object} models.BindingOut
// @Failure 409 {object} http.RestErrorResponseModel
// @Router /v1/bindings/{binding_id}/review [post]
func (h *bindingHandler) review(c echo.Context) error {
	req := new(models.ManualReviewRequest)

	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	res, err := h.identitySvc.CompleteManualReview(c.Request().Context(), c.Param("binding_id"), *req)
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, res.ToBindingOut())
}
