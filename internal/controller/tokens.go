package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"swapdesk/internal/format"
	"swapdesk/internal/models"
	"swapdesk/internal/service"
)

// ListTokens godoc
// @Summary List swappable tokens
// @Description Get all tokens with their latest USD prices
// @Tags tokens
// @Produce json
// @Success 200 {array} models.TokenView
// @Failure 503 {object} controller.APIError
// @Router /api/tokens [get]
func (c *Controller) ListTokens(ctx *gin.Context) {
	tokens, err := c.tokens.GetTokens(ctx.Request.Context())
	if err != nil {
		serviceUnavailable(ctx, service.MsgFetchFailed)
		return
	}

	views := make([]models.TokenView, 0, len(tokens))
	for _, tok := range tokens {
		views = append(views, models.TokenView{
			Token:        tok,
			PriceDisplay: format.FormatPrice(tok.Price, "USD", false),
		})
	}
	ctx.JSON(http.StatusOK, views)
}

// GetToken godoc
// @Summary Get one token
// @Description Get a token by currency symbol
// @Tags tokens
// @Produce json
// @Param currency path string true "Currency symbol (e.g. ETH)"
// @Success 200 {object} models.TokenView
// @Failure 404 {object} controller.APIError
// @Failure 503 {object} controller.APIError
// @Router /api/tokens/{currency} [get]
func (c *Controller) GetToken(ctx *gin.Context) {
	tok, err := c.tokens.GetToken(ctx.Request.Context(), ctx.Param("currency"))
	if err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			notFound(ctx, "Token not found")
			return
		}
		serviceUnavailable(ctx, service.MsgFetchFailed)
		return
	}

	ctx.JSON(http.StatusOK, models.TokenView{
		Token:        *tok,
		PriceDisplay: format.FormatPrice(tok.Price, "USD", false),
	})
}
