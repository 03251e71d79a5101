package icons

import (
	"fmt"
	"strings"
)

const DefaultBaseURL = "https://raw.githubusercontent.com/Switcheo/token-icons/main/tokens"

// Normalize maps a user-entered symbol to its canonical feed form.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// URL builds the static icon location for a symbol. No existence check
// is performed; broken images are the caller's concern.
func URL(baseURL, symbol string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return fmt.Sprintf("%s/%s.svg", strings.TrimRight(baseURL, "/"), Normalize(symbol))
}
