package google

import (
	"strings"

	"github.com/sirupsen/logrus"
	googledomain "github.com/wmarczak/reporting-api/infrastructure/integrator/google/domain"
	"github.com/wmarczak/reporting-api/internal/domain"
	"github.com/wmarczak/reporting-api/pkg/utils"
)

type funnelBucket int

const (
	bucketNone funnelBucket = iota
	bucketClickToCall
	bucketEmailContact
	bucketBookingStep1
	bucketBookingStep2
	bucketBookingStep3
	bucketReservation
)

type conversionRule struct {
	bucket   funnelBucket
	patterns []string
	excludes []string
}

// Vocabulário polonês dos nomes de conversão configurados nas contas Google
// Ads. A ordem importa: as etapas de reserva vêm antes da regra de reserva, e
// a regra de reserva exclui explicitamente nomes com "krok"/"step"/"etap" —
// "Zakup - krok 3" é uma etapa, não uma compra, e não pode contar duas vezes.
var googleConversionRules = []conversionRule{
	{bucket: bucketClickToCall, patterns: []string{"telefon", "połączenie", "click to call", "zadzwoń"}},
	{bucket: bucketEmailContact, patterns: []string{"e-mail", "mail", "wiadomość", "formularz"}},
	{bucket: bucketBookingStep1, patterns: []string{"krok 1", "step 1", "etap 1"}},
	{bucket: bucketBookingStep2, patterns: []string{"krok 2", "step 2", "etap 2"}},
	{bucket: bucketBookingStep3, patterns: []string{"krok 3", "step 3", "etap 3"}},
	{
		bucket:   bucketReservation,
		patterns: []string{"rezerwacja", "zakup", "purchase", "complete"},
		excludes: []string{"krok", "step", "etap"},
	},
}

func classifyConversion(name string) funnelBucket {
	normalized := strings.ToLower(name)

	for _, rule := range googleConversionRules {
		excluded := false
		for _, exclude := range rule.excludes {
			if strings.Contains(normalized, exclude) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}

		for _, pattern := range rule.patterns {
			if strings.Contains(normalized, pattern) {
				return rule.bucket
			}
		}
	}

	return bucketNone
}

// ParseConversions transforma as ações de conversão do Google Ads em métricas
// de funil normalizadas. Cada ação contribui para no máximo um bucket; valores
// inválidos ou negativos são descartados com log.
func ParseConversions(conversions []googledomain.ConversionAction, campaignLabel string) domain.FunnelMetrics {
	funnel := domain.FunnelMetrics{}

	for _, conversion := range conversions {
		if conversion.Conversions < 0 {
			logrus.WithFields(logrus.Fields{
				"conversion_name": conversion.Name,
				"conversions":     conversion.Conversions,
				"campaign":        campaignLabel,
			}).Warn("Contagem de conversões negativa, ignorando")
			continue
		}

		count := domain.RoundCount(conversion.Conversions)

		switch classifyConversion(conversion.Name) {
		case bucketClickToCall:
			funnel.ClickToCall += count
		case bucketEmailContact:
			funnel.EmailContacts += count
		case bucketBookingStep1:
			funnel.BookingStep1 += count
		case bucketBookingStep2:
			funnel.BookingStep2 += count
		case bucketBookingStep3:
			funnel.BookingStep3 += count
		case bucketReservation:
			funnel.Reservations += count
			if conversion.Value > 0 {
				funnel.ReservationValue += conversion.Value
			}
		}
	}

	funnel.ReservationValue = utils.RoundWithTwoDecimalPlace(funnel.ReservationValue)

	for _, warning := range funnel.InversionWarnings() {
		logrus.WithFields(logrus.Fields{
			"campaign": campaignLabel,
			"detail":   warning,
		}).Warn("Inversão de funil detectada nos dados do Google Ads")
	}

	return funnel
}
