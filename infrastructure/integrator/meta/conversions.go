package meta

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	metadomain "github.com/wmarczak/reporting-api/infrastructure/integrator/meta/domain"
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

// conversionRule associa padrões de action_type a um bucket do funil.
// As regras são avaliadas em ordem de prioridade e a primeira que casar
// vence, então cada ação contribui para no máximo um bucket.
type conversionRule struct {
	bucket   funnelBucket
	patterns []string
	excludes []string
}

// Vocabulário de action_type da Graph API. As etapas de reserva vêm antes da
// regra de reserva: uma ação de checkout nunca pode contar como compra.
var metaConversionRules = []conversionRule{
	{bucket: bucketClickToCall, patterns: []string{"click_to_call", "call_confirm", "phone_number_click"}},
	{bucket: bucketEmailContact, patterns: []string{"mailto", "email_contact", "contact_email"}},
	{bucket: bucketBookingStep1, patterns: []string{"search", "find_location"}},
	{bucket: bucketBookingStep2, patterns: []string{"view_content", "add_to_cart"}},
	{bucket: bucketBookingStep3, patterns: []string{"initiate_checkout", "initiated_checkout"}},
	{
		bucket:   bucketReservation,
		patterns: []string{"purchase", "reservation"},
		excludes: []string{"checkout", "add_to_cart", "view_content", "search"},
	},
}

// classifyAction resolve o bucket de um action_type pela tabela de regras
func classifyAction(rules []conversionRule, actionType string) funnelBucket {
	normalized := strings.ToLower(actionType)

	for _, rule := range rules {
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

// ParseActions transforma os arrays brutos de ações da Graph API em métricas
// de funil normalizadas. Valores inválidos ou negativos são descartados com
// log, nunca abortam o lote. Contadores são arredondados para inteiros e o
// valor monetário das reservas para 2 casas decimais.
func ParseActions(actions, actionValues []metadomain.RawAction, campaignLabel string) domain.FunnelMetrics {
	funnel := domain.FunnelMetrics{}

	for _, action := range actions {
		value, err := strconv.ParseFloat(action.Value, 64)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"action_type": action.ActionType,
				"value":       action.Value,
				"campaign":    campaignLabel,
			}).Debug("Valor de ação inválido, ignorando")
			continue
		}

		if value < 0 {
			logrus.WithFields(logrus.Fields{
				"action_type": action.ActionType,
				"value":       action.Value,
				"campaign":    campaignLabel,
			}).Warn("Valor de ação negativo, ignorando")
			continue
		}

		count := domain.RoundCount(value)

		switch classifyAction(metaConversionRules, action.ActionType) {
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
		}
	}

	// O valor monetário vem no array paralelo action_values, apenas para reservas
	for _, actionValue := range actionValues {
		if classifyAction(metaConversionRules, actionValue.ActionType) != bucketReservation {
			continue
		}

		value, err := strconv.ParseFloat(actionValue.Value, 64)
		if err != nil || value < 0 {
			logrus.WithFields(logrus.Fields{
				"action_type": actionValue.ActionType,
				"value":       actionValue.Value,
				"campaign":    campaignLabel,
			}).Debug("Valor monetário de reserva inválido, ignorando")
			continue
		}

		funnel.ReservationValue += value
	}

	funnel.ReservationValue = utils.RoundWithTwoDecimalPlace(funnel.ReservationValue)

	for _, warning := range funnel.InversionWarnings() {
		logrus.WithFields(logrus.Fields{
			"campaign": campaignLabel,
			"detail":   warning,
		}).Warn("Inversão de funil detectada nos dados do Meta")
	}

	return funnel
}
