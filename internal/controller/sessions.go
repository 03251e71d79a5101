package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"swapdesk/internal/models"
	"swapdesk/internal/service"
	"swapdesk/internal/swap"
)

type CreateSessionRequest struct {
	FromCurrency string `json:"from_currency"`
	ToCurrency   string `json:"to_currency"`
}

type SetTokenRequest struct {
	Currency string `json:"currency" binding:"required"`
}

type SetAmountRequest struct {
	Amount string `json:"amount"`
}

// CreateSession godoc
// @Summary Create a swap session
// @Description Open a new editable swap session, preselecting the default or requested pair when those tokens exist
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body controller.CreateSessionRequest false "Initial pair override"
// @Success 201 {object} models.SessionView
// @Failure 500 {object} controller.APIError
// @Router /api/sessions [post]
func (c *Controller) CreateSession(ctx *gin.Context) {
	var req CreateSessionRequest
	_ = ctx.ShouldBindJSON(&req)
	if req.FromCurrency == "" {
		req.FromCurrency = c.defaultFrom
	}
	if req.ToCurrency == "" {
		req.ToCurrency = c.defaultTo
	}

	session, err := c.sessions.Create()
	if err != nil {
		errorResponse(ctx, http.StatusInternalServerError, "Failed to create session")
		return
	}

	// preselection is best effort; an unknown or unavailable token just
	// leaves the slot empty
	if tok, err := c.tokens.GetToken(ctx.Request.Context(), req.FromCurrency); err == nil {
		session.SetFromToken(tok)
	}
	if tok, err := c.tokens.GetToken(ctx.Request.Context(), req.ToCurrency); err == nil {
		session.SetToToken(tok)
	}

	ctx.JSON(http.StatusCreated, session.View())
}

// GetSession godoc
// @Summary Get a swap session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionView
// @Failure 404 {object} controller.APIError
// @Router /api/sessions/{id} [get]
func (c *Controller) GetSession(ctx *gin.Context) {
	session := c.session(ctx)
	if session == nil {
		return
	}
	ctx.JSON(http.StatusOK, session.View())
}

// DeleteSession godoc
// @Summary Abandon a swap session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204 {string} string ""
// @Router /api/sessions/{id} [delete]
func (c *Controller) DeleteSession(ctx *gin.Context) {
	c.sessions.Delete(ctx.Param("id"))
	ctx.Status(http.StatusNoContent)
}

// SetFromToken godoc
// @Summary Select the source token
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body controller.SetTokenRequest true "Token selection"
// @Success 200 {object} models.SessionView
// @Failure 400 {object} controller.APIError
// @Failure 404 {object} controller.APIError
// @Router /api/sessions/{id}/from-token [put]
func (c *Controller) SetFromToken(ctx *gin.Context) {
	session := c.session(ctx)
	if session == nil {
		return
	}
	tok := c.lookupToken(ctx)
	if tok == nil {
		return
	}
	session.SetFromToken(tok)
	ctx.JSON(http.StatusOK, session.View())
}

// SetToToken godoc
// @Summary Select the destination token
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body controller.SetTokenRequest true "Token selection"
// @Success 200 {object} models.SessionView
// @Failure 400 {object} controller.APIError
// @Failure 404 {object} controller.APIError
// @Router /api/sessions/{id}/to-token [put]
func (c *Controller) SetToToken(ctx *gin.Context) {
	session := c.session(ctx)
	if session == nil {
		return
	}
	tok := c.lookupToken(ctx)
	if tok == nil {
		return
	}
	session.SetToToken(tok)
	ctx.JSON(http.StatusOK, session.View())
}

// SetFromAmount godoc
// @Summary Edit the source amount
// @Description Accepts a decimal amount string; the destination amount recomputes after the debounce window
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body controller.SetAmountRequest true "Amount edit"
// @Success 200 {object} models.SessionView
// @Failure 400 {object} controller.APIError
// @Failure 404 {object} controller.APIError
// @Router /api/sessions/{id}/from-amount [put]
func (c *Controller) SetFromAmount(ctx *gin.Context) {
	session := c.session(ctx)
	if session == nil {
		return
	}
	var req SetAmountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}
	if !session.SetFromAmount(req.Amount) {
		badRequest(ctx, "Invalid amount format")
		return
	}
	ctx.JSON(http.StatusOK, session.View())
}

// SetToAmount godoc
// @Summary Edit the destination amount
// @Description Accepts a decimal amount string; the source amount back-computes immediately
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body controller.SetAmountRequest true "Amount edit"
// @Success 200 {object} models.SessionView
// @Failure 400 {object} controller.APIError
// @Failure 404 {object} controller.APIError
// @Router /api/sessions/{id}/to-amount [put]
func (c *Controller) SetToAmount(ctx *gin.Context) {
	session := c.session(ctx)
	if session == nil {
		return
	}
	var req SetAmountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}
	if !session.SetToAmount(req.Amount) {
		badRequest(ctx, "Invalid amount format")
		return
	}
	ctx.JSON(http.StatusOK, session.View())
}

// SwapTokens godoc
// @Summary Flip the token pair
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionView
// @Failure 404 {object} controller.APIError
// @Router /api/sessions/{id}/swap-tokens [post]
func (c *Controller) SwapTokens(ctx *gin.Context) {
	session := c.session(ctx)
	if session == nil {
		return
	}
	session.SwapTokens()
	ctx.JSON(http.StatusOK, session.View())
}

// ResetSession godoc
// @Summary Reset a swap session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionView
// @Failure 404 {object} controller.APIError
// @Router /api/sessions/{id}/reset [post]
func (c *Controller) ResetSession(ctx *gin.Context) {
	session := c.session(ctx)
	if session == nil {
		return
	}
	session.Reset()
	ctx.JSON(http.StatusOK, session.View())
}

// ExecuteSwap godoc
// @Summary Execute the swap
// @Description Run the simulated commit; a session that fails validation is rejected with the specific message
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SwapReceipt
// @Failure 404 {object} controller.APIError
// @Failure 422 {object} controller.APIError
// @Router /api/sessions/{id}/execute [post]
func (c *Controller) ExecuteSwap(ctx *gin.Context) {
	session := c.session(ctx)
	if session == nil {
		return
	}
	receipt, err := session.Execute()
	if err != nil {
		unprocessable(ctx, err.Error())
		return
	}
	ctx.JSON(http.StatusOK, receipt)
}

func (c *Controller) session(ctx *gin.Context) *swap.Session {
	session, err := c.sessions.Get(ctx.Param("id"))
	if err != nil {
		notFound(ctx, "Session not found")
		return nil
	}
	return session
}

func (c *Controller) lookupToken(ctx *gin.Context) *models.Token {
	var req SetTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return nil
	}
	tok, err := c.tokens.GetToken(ctx.Request.Context(), req.Currency)
	if err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			notFound(ctx, "Token not found")
			return nil
		}
		serviceUnavailable(ctx, service.MsgFetchFailed)
		return nil
	}
	return tok
}
