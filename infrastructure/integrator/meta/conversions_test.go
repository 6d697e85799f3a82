package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	metadomain "github.com/wmarczak/reporting-api/infrastructure/integrator/meta/domain"
	"github.com/wmarczak/reporting-api/internal/domain"
)

func TestParseActions(t *testing.T) {
	tests := []struct {
		name         string
		actions      []metadomain.RawAction
		actionValues []metadomain.RawAction
		want         domain.FunnelMetrics
	}{
		{
			name: "Compra conta como reserva, checkout como etapa 3, sem contagem dupla",
			actions: []metadomain.RawAction{
				{ActionType: "purchase", Value: "3"},
				{ActionType: "initiate_checkout", Value: "10"},
			},
			want: domain.FunnelMetrics{
				BookingStep3: 10,
				Reservations: 3,
			},
		},
		{
			name: "Variante de checkout nunca entra como compra",
			actions: []metadomain.RawAction{
				{ActionType: "omni_initiated_checkout", Value: "5"},
				{ActionType: "onsite_web_purchase", Value: "2"},
			},
			want: domain.FunnelMetrics{
				BookingStep3: 5,
				Reservations: 2,
			},
		},
		{
			name: "Ações de contato classificadas nos próprios buckets",
			actions: []metadomain.RawAction{
				{ActionType: "click_to_call_native_call_placed", Value: "4"},
				{ActionType: "contact_email", Value: "2"},
				{ActionType: "search", Value: "20"},
				{ActionType: "view_content", Value: "15"},
			},
			want: domain.FunnelMetrics{
				ClickToCall:   4,
				EmailContacts: 2,
				BookingStep1:  20,
				BookingStep2:  15,
			},
		},
		{
			name: "Valores fracionários de atribuição são arredondados",
			actions: []metadomain.RawAction{
				{ActionType: "purchase", Value: "2.6"},
				{ActionType: "initiate_checkout", Value: "7.4"},
			},
			want: domain.FunnelMetrics{
				BookingStep3: 7,
				Reservations: 3,
			},
		},
		{
			name: "Valores inválidos ou negativos são descartados sem abortar o lote",
			actions: []metadomain.RawAction{
				{ActionType: "purchase", Value: "abc"},
				{ActionType: "purchase", Value: "-5"},
				{ActionType: "purchase", Value: "1"},
			},
			want: domain.FunnelMetrics{
				Reservations: 1,
			},
		},
		{
			name: "Ação desconhecida não contribui para nenhum bucket",
			actions: []metadomain.RawAction{
				{ActionType: "page_engagement", Value: "100"},
				{ActionType: "post_reaction", Value: "42"},
			},
			want: domain.FunnelMetrics{},
		},
		{
			name: "Valor monetário vem apenas de action_values de reservas",
			actions: []metadomain.RawAction{
				{ActionType: "purchase", Value: "2"},
			},
			actionValues: []metadomain.RawAction{
				{ActionType: "purchase", Value: "1250.505"},
				{ActionType: "initiate_checkout", Value: "9999"},
			},
			want: domain.FunnelMetrics{
				Reservations:     2,
				ReservationValue: 1250.51,
			},
		},
		{
			name: "Valor monetário inválido é ignorado",
			actions: []metadomain.RawAction{
				{ActionType: "purchase", Value: "1"},
			},
			actionValues: []metadomain.RawAction{
				{ActionType: "purchase", Value: "não-numérico"},
			},
			want: domain.FunnelMetrics{
				Reservations: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseActions(tt.actions, tt.actionValues, "campanha-teste")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyAction(t *testing.T) {
	tests := []struct {
		actionType string
		want       funnelBucket
	}{
		{"purchase", bucketReservation},
		{"offsite_conversion.fb_pixel_purchase", bucketReservation},
		{"initiate_checkout", bucketBookingStep3},
		{"omni_initiated_checkout", bucketBookingStep3},
		{"add_to_cart", bucketBookingStep2},
		{"view_content", bucketBookingStep2},
		{"search", bucketBookingStep1},
		{"click_to_call", bucketClickToCall},
		{"PURCHASE", bucketReservation},
		{"link_click", bucketNone},
	}

	for _, tt := range tests {
		t.Run(tt.actionType, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyAction(metaConversionRules, tt.actionType))
		})
	}
}
