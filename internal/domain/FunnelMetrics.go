package domain

import (
	"fmt"
	"math"

	"github.com/wmarczak/reporting-api/pkg/utils"
)

// FunnelMetrics representa as métricas de funil de conversão normalizadas
// de uma plataforma de anúncios (ligações, e-mails, etapas de reserva e reservas)
type FunnelMetrics struct {
	ClickToCall      int     `json:"click_to_call"`
	EmailContacts    int     `json:"email_contacts"`
	BookingStep1     int     `json:"booking_step_1"`
	BookingStep2     int     `json:"booking_step_2"`
	BookingStep3     int     `json:"booking_step_3"`
	Reservations     int     `json:"reservations"`
	ReservationValue float64 `json:"reservation_value"`
}

// Add soma as métricas de outro funil neste
func (f *FunnelMetrics) Add(other FunnelMetrics) {
	f.ClickToCall += other.ClickToCall
	f.EmailContacts += other.EmailContacts
	f.BookingStep1 += other.BookingStep1
	f.BookingStep2 += other.BookingStep2
	f.BookingStep3 += other.BookingStep3
	f.Reservations += other.Reservations
	f.ReservationValue += other.ReservationValue
}

// Round normaliza o valor monetário após somas repetidas.
// Somas sucessivas de float64 acumulam ruído que precisa ser corrigido.
func (f *FunnelMetrics) Round() {
	f.ReservationValue = utils.RoundWithTwoDecimalPlace(f.ReservationValue)
}

// ROAS calcula o retorno sobre o investimento em anúncios
func (f FunnelMetrics) ROAS(spend float64) float64 {
	if spend <= 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(f.ReservationValue / spend)
}

// CostPerReservation calcula o custo por reserva
func (f FunnelMetrics) CostPerReservation(spend float64) float64 {
	if f.Reservations <= 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(spend / float64(f.Reservations))
}

// InversionWarnings verifica inversões no funil (uma etapa posterior maior que
// a anterior). Inversões são sinal de qualidade de dados, não erro: o chamador
// apenas registra os avisos.
func (f FunnelMetrics) InversionWarnings() []string {
	var warnings []string

	if f.BookingStep1 > 0 && f.BookingStep2 > f.BookingStep1 {
		warnings = append(warnings, fmt.Sprintf("booking_step_2 (%d) maior que booking_step_1 (%d)", f.BookingStep2, f.BookingStep1))
	}

	if f.BookingStep2 > 0 && f.BookingStep3 > f.BookingStep2 {
		warnings = append(warnings, fmt.Sprintf("booking_step_3 (%d) maior que booking_step_2 (%d)", f.BookingStep3, f.BookingStep2))
	}

	if f.BookingStep3 > 0 && f.Reservations > f.BookingStep3 {
		warnings = append(warnings, fmt.Sprintf("reservations (%d) maior que booking_step_3 (%d)", f.Reservations, f.BookingStep3))
	}

	return warnings
}

// RoundCount arredonda um contador fracionário vindo de modelos de atribuição.
// Valores negativos ou inválidos retornam zero para serem descartados pelo parser.
func RoundCount(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return int(math.Round(v))
}
