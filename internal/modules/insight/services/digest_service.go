package services

import (
	"fmt"
	"strings"

	"github.com/ordelia/order-insight-be/internal/core/insight"
	"github.com/ordelia/order-insight-be/internal/core/messaging"
	"github.com/ordelia/order-insight-be/internal/shared/utils"
)

// DigestService relays a daily insight summary to the merchant's WhatsApp
// number via the configured gateway.
type DigestService struct {
	insightSvc    *InsightService
	provider      messaging.Provider
	merchantPhone string
	windowDays    int
}

func NewDigestService(
	insightSvc *InsightService,
	provider messaging.Provider,
	merchantPhone string,
	windowDays int,
) *DigestService {
	return &DigestService{
		insightSvc:    insightSvc,
		provider:      provider,
		merchantPhone: merchantPhone,
		windowDays:    windowDays,
	}
}

// SendDailyDigest builds and sends the trend digest. With no merchant phone
// configured the digest is skipped, not treated as a failure.
func (s *DigestService) SendDailyDigest() error {
	if s.merchantPhone == "" {
		utils.LogWarn("digest skipped: no merchant phone configured", nil)
		return nil
	}

	report, err := s.insightSvc.ProductTrends(s.windowDays)
	if err != nil {
		return fmt.Errorf("failed to build trend report: %w", err)
	}

	message := FormatDigest(report, s.windowDays)
	if err := s.provider.SendMessage(s.merchantPhone, message); err != nil {
		return fmt.Errorf("failed to deliver digest: %w", err)
	}

	utils.LogInfo("insight digest delivered", map[string]interface{}{
		"to":       s.merchantPhone,
		"provider": s.provider.GetProviderName(),
	})
	return nil
}

// FormatDigest renders a trend report as a WhatsApp-friendly text message.
func FormatDigest(report *insight.TrendReport, windowDays int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Ringkasan penjualan %d hari terakhir\n", windowDays)

	if report.Error != "" {
		b.WriteString("\nBelum ada cukup data pesanan untuk dianalisis.")
		return b.String()
	}

	if len(report.Growing) > 0 {
		b.WriteString("\n📈 Naik:\n")
		for _, entry := range report.Growing {
			fmt.Fprintf(&b, "• %s (+%.0f%%)\n", entry.ProductName, entry.GrowthRate)
		}
	}
	if len(report.Declining) > 0 {
		b.WriteString("\n📉 Turun:\n")
		for _, entry := range report.Declining {
			fmt.Fprintf(&b, "• %s (%.0f%%)\n", entry.ProductName, entry.GrowthRate)
		}
	}
	if len(report.TopProducts) > 0 {
		b.WriteString("\n🏆 Terlaris:\n")
		limit := 3
		if len(report.TopProducts) < limit {
			limit = len(report.TopProducts)
		}
		for _, top := range report.TopProducts[:limit] {
			fmt.Fprintf(&b, "• %s (%.0f pcs)\n", top.ProductName, top.TotalQuantity)
		}
	}
	if len(report.Growing) == 0 && len(report.Declining) == 0 {
		b.WriteString("\nTidak ada perubahan tren yang berarti.\n")
	}

	return b.String()
}
