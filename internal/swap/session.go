package swap

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"swapdesk/internal/format"
	"swapdesk/internal/models"
	"swapdesk/pkg/debounce"
	"swapdesk/pkg/types/notify"
)

var ErrInvalidSessionConfig = errors.New("invalid swap session config")

// User-facing execution messages.
const (
	MsgSwapExecuted  = "Swap executed successfully!"
	MsgSwapFailed    = "Swap failed. Please try again."
	MsgTokensSwapped = "Tokens swapped"
)

// Help text shown next to the swap button.
const (
	HelpSelectTokens = "Select tokens to swap"
	HelpEnterAmount  = "Enter an amount"
	HelpReady        = "Ready to swap"
)

const (
	DefaultDebounceDelay = 300 * time.Millisecond
	DefaultExecuteDelay  = time.Second
)

// Session is one editable swap form. Amount edits are pattern-gated;
// an accepted from-amount schedules a debounced recompute of the
// to-amount, while to-amount edits back-compute immediately. The
// exchange rate is always derived from the current tokens, never
// stored.
type Session struct {
	id           string
	logger       *slog.Logger
	notifier     notify.Notifier
	debouncer    *debounce.Debouncer
	executeDelay time.Duration

	mu         sync.Mutex
	fromToken  *models.Token
	toToken    *models.Token
	fromAmount string
	toAmount   string
	isLoading  bool
	errMsg     string
}

type SessionOption func(*Session)

func WithSessionID(id string) SessionOption {
	return func(s *Session) {
		s.id = id
	}
}

func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

func WithSessionNotifier(n notify.Notifier) SessionOption {
	return func(s *Session) {
		s.notifier = n
	}
}

func WithSessionDebouncer(d *debounce.Debouncer) SessionOption {
	return func(s *Session) {
		s.debouncer = d
	}
}

func WithSessionExecuteDelay(d time.Duration) SessionOption {
	return func(s *Session) {
		s.executeDelay = d
	}
}

func (s *Session) IsValid() error {
	switch {
	case s.id == "":
		return errors.Wrap(ErrInvalidSessionConfig, "id cannot be empty")
	case s.logger == nil:
		return errors.Wrap(ErrInvalidSessionConfig, "logger cannot be nil")
	case s.notifier == nil:
		return errors.Wrap(ErrInvalidSessionConfig, "notifier cannot be nil")
	case s.debouncer == nil:
		return errors.Wrap(ErrInvalidSessionConfig, "debouncer cannot be nil")
	case s.executeDelay < 0:
		return errors.Wrap(ErrInvalidSessionConfig, "execute delay cannot be negative")
	default:
		return nil
	}
}

func NewSession(opts ...SessionOption) (*Session, error) {
	s := &Session{executeDelay: DefaultExecuteDelay}

	for _, opt := range opts {
		opt(s)
	}

	if s.debouncer == nil {
		d, err := debounce.New(DefaultDebounceDelay)
		if err != nil {
			return nil, err
		}
		s.debouncer = d
	}

	return s, s.IsValid()
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) DebounceDelay() time.Duration {
	return s.debouncer.Delay()
}

// SetFromToken replaces the source token and schedules a recompute of
// the to-amount at the new rate.
func (s *Session) SetFromToken(tok *models.Token) {
	s.mu.Lock()
	s.fromToken = tok
	s.errMsg = ""
	s.mu.Unlock()
	s.scheduleRecompute()
}

// SetToToken replaces the destination token and schedules a recompute
// of the to-amount at the new rate.
func (s *Session) SetToToken(tok *models.Token) {
	s.mu.Lock()
	s.toToken = tok
	s.errMsg = ""
	s.mu.Unlock()
	s.scheduleRecompute()
}

// SetFromAmount accepts an edit of the source amount. Input that does
// not match the amount pattern is ignored and the previous value kept.
// An accepted edit schedules the debounced recompute; bursts collapse
// to one recompute using the latest state.
func (s *Session) SetFromAmount(amount string) bool {
	if !format.MatchesAmountPattern(amount) {
		return false
	}
	s.mu.Lock()
	s.fromAmount = amount
	s.errMsg = ""
	s.mu.Unlock()
	s.scheduleRecompute()
	return true
}

// SetToAmount accepts an edit of the destination amount and immediately
// back-computes the source amount through the inverse rate. With no
// rate the source amount is left untouched.
func (s *Session) SetToAmount(amount string) bool {
	if !format.MatchesAmountPattern(amount) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toAmount = amount
	s.errMsg = ""

	rate := ExchangeRate(s.fromToken, s.toToken)
	if rate <= 0 {
		return true
	}
	if amount == "" {
		s.fromAmount = ""
		return true
	}
	if out := OutputAmountString(amount, 1/rate); out > 0 {
		s.fromAmount = formatAmountField(out)
	} else {
		s.fromAmount = ""
	}
	return true
}

// SwapTokens exchanges the token pair and both amounts atomically.
func (s *Session) SwapTokens() {
	s.mu.Lock()
	s.fromToken, s.toToken = s.toToken, s.fromToken
	s.fromAmount, s.toAmount = s.toAmount, s.fromAmount
	s.errMsg = ""
	s.mu.Unlock()
	s.notifier.Notify(notify.LevelInfo, MsgTokensSwapped)
}

// Reset clears every field unconditionally and drops any pending
// recompute.
func (s *Session) Reset() {
	s.debouncer.Cancel()
	s.mu.Lock()
	s.fromToken = nil
	s.toToken = nil
	s.fromAmount = ""
	s.toAmount = ""
	s.isLoading = false
	s.errMsg = ""
	s.mu.Unlock()
}

// Execute runs the simulated commit. A session that is not Ready is
// rejected with the specific validation message and left otherwise
// untouched; a Ready session goes loading, commits after the artificial
// delay, notifies success, and resets to its initial state.
func (s *Session) Execute() (*models.SwapReceipt, error) {
	s.mu.Lock()
	if s.isLoading {
		s.errMsg = MsgSwapFailed
		s.mu.Unlock()
		s.notifier.Notify(notify.LevelError, MsgSwapFailed)
		return nil, errors.New(MsgSwapFailed)
	}

	v := format.ValidateSwap(s.fromToken, s.toToken, s.fromAmount)
	if !v.IsValid {
		s.errMsg = v.Error
		s.mu.Unlock()
		s.notifier.Notify(notify.LevelError, v.Error)
		return nil, errors.New(v.Error)
	}

	s.isLoading = true
	s.errMsg = ""
	from, to := s.fromToken, s.toToken
	rate := ExchangeRate(from, to)
	amount, _ := strconv.ParseFloat(s.fromAmount, 64)
	s.mu.Unlock()

	time.Sleep(s.executeDelay)

	receipt := &models.SwapReceipt{
		ID:           uuid.NewString(),
		FromCurrency: from.Currency,
		ToCurrency:   to.Currency,
		FromAmount:   amount,
		ToAmount:     OutputAmount(amount, rate),
		ExchangeRate: rate,
		ExecutedAt:   time.Now(),
	}

	s.Reset()

	s.notifier.Notify(notify.LevelSuccess, MsgSwapExecuted)
	s.logger.Info("swap executed",
		"session", s.id,
		"receipt", receipt.ID,
		"from", receipt.FromCurrency,
		"to", receipt.ToCurrency,
		"amount", receipt.FromAmount,
	)
	return receipt, nil
}

// ExchangeRate returns the current derived rate.
func (s *Session) ExchangeRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ExchangeRate(s.fromToken, s.toToken)
}

func (s *Session) FromAmount() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fromAmount
}

func (s *Session) ToAmount() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toAmount
}

func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

func (s *Session) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// View projects the session for the API.
func (s *Session) View() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	rate := ExchangeRate(s.fromToken, s.toToken)
	var fromSym, toSym string
	if s.fromToken != nil {
		fromSym = s.fromToken.Currency
	}
	if s.toToken != nil {
		toSym = s.toToken.Currency
	}

	return models.SessionView{
		ID:           s.id,
		FromToken:    s.fromToken,
		ToToken:      s.toToken,
		FromAmount:   s.fromAmount,
		ToAmount:     s.toAmount,
		ExchangeRate: rate,
		RateDisplay:  format.FormatExchangeRate(rate, fromSym, toSym),
		IsLoading:    s.isLoading,
		IsValidSwap:  format.ValidateSwap(s.fromToken, s.toToken, s.fromAmount).IsValid,
		HelpText:     s.helpText(),
		Error:        s.errMsg,
	}
}

func (s *Session) helpText() string {
	switch {
	case s.fromToken == nil || s.toToken == nil:
		return HelpSelectTokens
	case s.fromToken.Currency == s.toToken.Currency:
		return HelpSelectTokens
	case !format.IsValidAmount(s.fromAmount):
		return HelpEnterAmount
	default:
		return HelpReady
	}
}

func (s *Session) scheduleRecompute() {
	s.debouncer.Trigger(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		rate := ExchangeRate(s.fromToken, s.toToken)
		if s.fromAmount == "" || rate <= 0 {
			s.toAmount = ""
			return
		}
		if out := OutputAmountString(s.fromAmount, rate); out > 0 {
			s.toAmount = formatAmountField(out)
		} else {
			s.toAmount = ""
		}
	})
}

// formatAmountField renders a computed amount back into an editable
// field: plain decimal, up to 8 fractional digits, no grouping.
func formatAmountField(v float64) string {
	s := strconv.FormatFloat(v, 'f', 8, 64)
	s = trimTrailingZeros(s)
	return s
}

func trimTrailingZeros(s string) string {
	i := len(s) - 1
	for i >= 0 && s[i] == '0' {
		i--
	}
	if i >= 0 && s[i] == '.' {
		i--
	}
	return s[:i+1]
}
