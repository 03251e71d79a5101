package cli

import (
	"bufio"
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
	"swapdesk/internal/models"
	"swapdesk/internal/service"
	"swapdesk/internal/swap"
	"swapdesk/pkg/integrations/memcache"
	"swapdesk/pkg/types/notify"
)

var noConfirm bool

var swapCmd = &cobra.Command{
	Use:   "swap <amount> <source-token> to <dest-token>",
	Short: "Execute a token swap",
	Long: `Quote and execute a swap in one go.

The swap is confirmed interactively unless --yes is given.

Examples:
  swapctl swap 1.5 ETH to BTC
  swapctl swap 100 USDC to ATOM --yes`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSwap,
}

func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip confirmation prompt")
}

// silentNotifier drops notifications so JSON output stays clean.
type silentNotifier struct{}

func (silentNotifier) Notify(notify.Level, string, ...notify.Option) {}

// consoleNotifier prints session notifications as colored lines.
type consoleNotifier struct{}

func (consoleNotifier) Notify(level notify.Level, message string, _ ...notify.Option) {
	switch level {
	case notify.LevelSuccess:
		color.Green("  %s", message)
	case notify.LevelError:
		color.Red("  %s", message)
	default:
		color.Cyan("  %s", message)
	}
}

func runSwap(cmd *cobra.Command, args []string) {
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

	tokenSvc, err := newTokenService(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	var notifier notify.Notifier = consoleNotifier{}
	if jsonOutput {
		notifier = silentNotifier{}
	}

	sessionSvc, err := service.NewSessionService(
		service.WithSessionServiceLogger(discardLogger),
		service.WithSessionServiceNotifier(notifier),
		service.WithSessionStore(memcache.New[string, *swap.Session](cfg.SessionTTL)),
		service.WithSessionDebounceDelay(cfg.DebounceDelay),
		service.WithSessionExecuteDelay(cfg.ExecuteDelay),
	)
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

	from, fromErr := tokenSvc.GetToken(ctx, fromSym)
	to, toErr := tokenSvc.GetToken(ctx, toSym)
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

	session, err := sessionSvc.Create()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	session.SetFromToken(from)
	session.SetToToken(to)
	if !session.SetFromAmount(amount) {
		printError(fmt.Errorf("invalid amount: %s", amount))
		os.Exit(1)
	}

	// wait out the debounce so the preview shows the computed output
	time.Sleep(session.DebounceDelay() + 50*time.Millisecond)

	view := session.View()
	if !view.IsValidSwap {
		printError(fmt.Errorf("%s", view.HelpText))
		os.Exit(1)
	}

	if !jsonOutput {
		displayPreview(view)
	}

	if !noConfirm && !jsonOutput {
		if !confirm() {
			fmt.Println("\nSwap cancelled.")
			return
		}
	}

	if !jsonOutput {
		s.Suffix = " Executing swap..."
		s.Start()
	}

	receipt, err := session.Execute()
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(receipt, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	displayReceipt(receipt)
}

func confirm() bool {
	fmt.Print("Proceed with the swap? [y/N]: ")
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func displayPreview(view models.SessionView) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     SWAP PREVIEW")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  From:  %s %s\n", color.YellowString(view.FromAmount), view.FromToken.Currency)
	fmt.Printf("  To:    %s %s\n", color.YellowString(view.ToAmount), view.ToToken.Currency)
	fmt.Printf("  Rate:  %s\n\n", view.RateDisplay)
}

func displayReceipt(receipt *models.SwapReceipt) {
	fmt.Println(strings.Repeat("=", 60))
	color.Green("                 SWAP EXECUTED")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  Receipt:   %s\n", color.HiBlackString(receipt.ID))
	fmt.Printf("  Sent:      %s %s\n",
		color.YellowString("%g", receipt.FromAmount), receipt.FromCurrency)
	fmt.Printf("  Received:  %s %s\n",
		color.YellowString("%g", receipt.ToAmount), receipt.ToCurrency)
	fmt.Printf("  Executed:  %s\n\n", receipt.ExecutedAt.Format(time.RFC3339))
}
