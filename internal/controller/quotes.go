package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"swapdesk/internal/format"
	"swapdesk/internal/models"
	"swapdesk/internal/service"
	"swapdesk/internal/swap"
)

type QuoteRequest struct {
	FromCurrency string `json:"from_currency" binding:"required"`
	ToCurrency   string `json:"to_currency" binding:"required"`
	Amount       string `json:"amount" binding:"required"`
}

// CreateQuote godoc
// @Summary Quote a swap
// @Description Compute the exchange rate and output amount for a pair without touching a session
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body controller.QuoteRequest true "Quote request"
// @Success 200 {object} models.Quote
// @Failure 400 {object} controller.APIError
// @Failure 404 {object} controller.APIError
// @Failure 422 {object} controller.APIError
// @Failure 503 {object} controller.APIError
// @Router /api/quotes [post]
func (c *Controller) CreateQuote(ctx *gin.Context) {
	var req QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}

	from, err := c.tokens.GetToken(ctx.Request.Context(), req.FromCurrency)
	if err != nil {
		c.quoteLookupError(ctx, err)
		return
	}
	to, err := c.tokens.GetToken(ctx.Request.Context(), req.ToCurrency)
	if err != nil {
		c.quoteLookupError(ctx, err)
		return
	}

	if v := format.ValidateSwap(from, to, req.Amount); !v.IsValid {
		unprocessable(ctx, v.Error)
		return
	}

	rate := swap.ExchangeRate(from, to)
	amount, _ := strconv.ParseFloat(strings.TrimSpace(req.Amount), 64)
	out := swap.OutputAmount(amount, rate)

	ctx.JSON(http.StatusOK, models.Quote{
		FromCurrency:    from.Currency,
		ToCurrency:      to.Currency,
		FromAmount:      amount,
		ToAmount:        out,
		ExchangeRate:    rate,
		RateDisplay:     format.FormatExchangeRate(rate, from.Currency, to.Currency),
		ToAmountDisplay: format.FormatCryptoAmount(out, to.Currency, true),
		FromUSDDisplay:  swap.USDValue(amount, from.Price),
		ToUSDDisplay:    swap.USDValue(out, to.Price),
	})
}

func (c *Controller) quoteLookupError(ctx *gin.Context, err error) {
	if errors.Is(err, service.ErrTokenNotFound) {
		notFound(ctx, "Token not found")
		return
	}
	serviceUnavailable(ctx, service.MsgFetchFailed)
}
