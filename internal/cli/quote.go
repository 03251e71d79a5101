package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swapdesk/internal/config"
	"swapdesk/internal/format"
	"swapdesk/internal/models"
	"swapdesk/internal/swap"
)

var quoteCmd = &cobra.Command{
	Use:   "quote <amount> <source-token> to <dest-token>",
	Short: "Quote a swap at the current rate",
	Long: `Compute what a swap would return at the current feed prices.

Examples:
  swapctl quote 1.5 ETH to BTC
  swapctl quote 100 USDC to ATOM`,
	Args: cobra.MinimumNArgs(1),
	Run:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	amount, fromSym, toSym, err := parseSwapArgs(strings.Join(args, " "))
	if err != nil {
		printError(err)
		os.Exit(1)
	}

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
		s.Suffix = " Fetching quote..."
		s.Start()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	from, fromErr := svc.GetToken(ctx, fromSym)
	to, toErr := svc.GetToken(ctx, toSym)
	if !jsonOutput {
		s.Stop()
	}
	if fromErr != nil {
		printError(fromErr)
		os.Exit(1)
	}
	if toErr != nil {
		printError(toErr)
		os.Exit(1)
	}

	if v := format.ValidateSwap(from, to, amount); !v.IsValid {
		printError(fmt.Errorf("%s", v.Error))
		os.Exit(1)
	}

	quote := buildQuote(from, to, amount)
	if jsonOutput {
		jsonData, _ := json.MarshalIndent(quote, "", "  ")
		fmt.Println(string(jsonData))
		return
	}
	displayQuote(quote)
}

func buildQuote(from, to *models.Token, amount string) *models.Quote {
	a, _ := strconv.ParseFloat(amount, 64)
	rate := swap.ExchangeRate(from, to)
	out := swap.OutputAmount(a, rate)

	return &models.Quote{
		FromCurrency:    from.Currency,
		ToCurrency:      to.Currency,
		FromAmount:      a,
		ToAmount:        out,
		ExchangeRate:    rate,
		RateDisplay:     format.FormatExchangeRate(rate, from.Currency, to.Currency),
		ToAmountDisplay: format.FormatCryptoAmount(out, to.Currency, true),
		FromUSDDisplay:  swap.USDValue(a, from.Price),
		ToUSDDisplay:    swap.USDValue(out, to.Price),
	}
}

func displayQuote(q *models.Quote) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                      SWAP QUOTE")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  You send:     %s %s  %s\n",
		color.YellowString(format.FormatAmount(q.FromAmount, format.DefaultAmountDecimals, false)),
		q.FromCurrency,
		color.HiBlackString("(%s)", q.FromUSDDisplay))
	fmt.Printf("  You receive:  %s  %s\n",
		color.YellowString(q.ToAmountDisplay),
		color.HiBlackString("(%s)", q.ToUSDDisplay))
	fmt.Printf("  Rate:         %s\n", q.RateDisplay)

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}
