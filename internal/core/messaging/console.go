package messaging

import "github.com/ordelia/order-insight-be/internal/shared/utils"

// ConsoleProvider logs outbound messages instead of delivering them. Used in
// development and as the fallback when no gateway is configured.
type ConsoleProvider struct{}

func NewConsoleProvider() *ConsoleProvider {
	return &ConsoleProvider{}
}

func (c *ConsoleProvider) GetProviderName() string {
	return "console"
}

func (c *ConsoleProvider) Connect() error {
	return nil
}

func (c *ConsoleProvider) IsConnected() bool {
	return true
}

func (c *ConsoleProvider) SendMessage(phoneNumber, message string) error {
	utils.LogInfo("message delivered to console", map[string]interface{}{
		"to":   phoneNumber,
		"text": message,
	})
	return nil
}
