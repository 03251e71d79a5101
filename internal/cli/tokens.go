package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swapdesk/internal/config"
	"swapdesk/internal/format"
	"swapdesk/internal/models"
)

var filterSymbol string

var tokensCmd = &cobra.Command{
	Use:     "tokens",
	Aliases: []string{"list-tokens", "ls"},
	Short:   "List all swappable tokens",
	Long: `List all tokens with a known price on the feed.

Examples:
  swapctl tokens
  swapctl tokens --symbol USD`,
	Run: runListTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVar(&filterSymbol, "symbol", "", "Filter by token symbol")
}

func runListTokens(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	svc, err := newTokenService(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching prices..."
		s.Start()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	tokens, err := svc.GetTokens(ctx)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if filterSymbol != "" {
		var filtered []models.Token
		for _, tok := range tokens {
			if strings.Contains(tok.Currency, strings.ToUpper(filterSymbol)) {
				filtered = append(filtered, tok)
			}
		}
		tokens = filtered
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(tokens, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	displayTokens(tokens)
}

func displayTokens(tokens []models.Token) {
	if len(tokens) == 0 {
		fmt.Println("\nNo tokens found matching the criteria.")
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                        SWAPPABLE TOKENS")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println()

	for _, tok := range tokens {
		fmt.Printf("  %-10s  %14s   %s\n",
			color.YellowString(tok.Currency),
			format.FormatPrice(tok.Price, "USD", false),
			color.HiBlackString(tok.LastUpdated.Format(time.RFC3339)))
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Printf("\nTotal: %d tokens\n\n", len(tokens))
}
