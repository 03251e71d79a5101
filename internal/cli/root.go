package cli

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swapdesk/internal/config"
	"swapdesk/internal/models"
	"swapdesk/internal/service"
	"swapdesk/pkg/integrations/memcache"
	"swapdesk/pkg/integrations/pricefeed/livefeed"
	"swapdesk/pkg/integrations/pricefeed/mockfeed"
	"swapdesk/pkg/types/pricefeed"
)

var useMockFeed bool

var rootCmd = &cobra.Command{
	Use:   "swapctl",
	Short: "A CLI for quoting and executing currency swaps",
	Long: `swapctl quotes and executes token swaps against the live price feed.

Examples:
  swapctl tokens
  swapctl quote 1.5 ETH to BTC
  swapctl swap 100 USDC to ATOM --yes`,
	Version: "1.0.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&useMockFeed, "mock", false, "Use the built-in sample feed instead of the live one")
}

func printError(err error) {
	color.Red("\nError: %v\n", err)
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// newTokenService wires a token service the same way the server does,
// minus the shared cache (every invocation starts cold).
func newTokenService(cfg *config.Config) (*service.TokenService, error) {
	var source pricefeed.Source
	if useMockFeed || cfg.PriceFeedMode == pricefeed.ModeMock {
		source = mockfeed.New()
	} else {
		source = livefeed.New(cfg.PriceFeedURL)
	}

	return service.NewTokenService(
		service.WithTokenLogger(discardLogger),
		service.WithTokenCache(memcache.New[string, []models.Token](cfg.CacheTTL)),
		service.WithTokenSource(source),
		service.WithTokenIconBaseURL(cfg.IconBaseURL),
	)
}

var swapArgsPattern = regexp.MustCompile(`^(\d+\.?\d*)\s+([A-Z0-9]+)\s+TO\s+([A-Z0-9]+)$`)

// parseSwapArgs parses "<amount> <from> to <to>" argument lists, e.g.
// "1.5 ETH to BTC".
func parseSwapArgs(joined string) (amount, from, to string, err error) {
	matches := swapArgsPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(joined)))
	if matches == nil {
		return "", "", "", fmt.Errorf("invalid format. Expected: '<amount> <token> to <token>' (e.g., '1.5 ETH to BTC')")
	}
	return matches[1], matches[2], matches[3], nil
}
