package messaging

import "fmt"

// Provider is the outbound WhatsApp gateway used by the relay for order
// acknowledgments and insight digests.
type Provider interface {
	// Connect initializes the gateway session
	Connect() error

	// SendMessage sends a text message to the destination number
	SendMessage(phoneNumber, message string) error

	// IsConnected reports whether the session is usable
	IsConnected() bool

	// GetProviderName returns the provider name for logging
	GetProviderName() string
}

// ProviderType selects the gateway implementation.
type ProviderType string

const (
	ProviderWAHA    ProviderType = "waha"
	ProviderConsole ProviderType = "console"
)

// ProviderConfig holds per-provider settings.
type ProviderConfig struct {
	Type ProviderType

	// WAHA specific
	WAHABaseURL   string
	WAHAAPIKey    string
	WAHASessionID string
}

// NewProvider creates a provider from config. An empty WAHA base URL falls
// back to the console provider so local development works without a gateway.
func NewProvider(cfg *ProviderConfig) (Provider, error) {
	switch cfg.Type {
	case ProviderWAHA:
		if cfg.WAHABaseURL == "" {
			return nil, fmt.Errorf("WAHA_BASE_URL is required")
		}
		sessionID := cfg.WAHASessionID
		if sessionID == "" {
			sessionID = "default"
		}
		return NewWAHAProvider(cfg.WAHABaseURL, cfg.WAHAAPIKey, sessionID), nil

	case ProviderConsole, "":
		return NewConsoleProvider(), nil

	default:
		return nil, fmt.Errorf("unknown messaging provider: %s", cfg.Type)
	}
}
