package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wmarczak/reporting-api/internal/domain"
)

func TestMonthBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "Mês de 31 dias",
			year:      2024,
			month:     time.January,
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:      "Fevereiro em ano bissexto",
			year:      2024,
			month:     time.February,
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:      "Dezembro vira o ano",
			year:      2024,
			month:     time.December,
			wantStart: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := MonthBoundaries(tt.year, tt.month)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestISOWeekBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		date      time.Time
		wantStart time.Time
	}{
		{
			name:      "Quarta-feira no meio da semana",
			date:      time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC),
			wantStart: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Segunda-feira é o próprio início",
			date:      time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Domingo pertence à semana que começou na segunda anterior",
			date:      time.Date(2024, 1, 14, 23, 59, 0, 0, time.UTC),
			wantStart: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Semana atravessa a virada do ano",
			date:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ISOWeekBoundaries(tt.date)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantStart.AddDate(0, 0, 7).Add(-time.Nanosecond), end)
		})
	}
}

func TestPeriodID(t *testing.T) {
	tests := []struct {
		name        string
		date        time.Time
		granularity domain.Granularity
		want        string
	}{
		{
			name:        "Mês comum",
			date:        time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
			granularity: domain.GranularityMonth,
			want:        "2024-03",
		},
		{
			name:        "Qualquer dia do mês produz o mesmo identificador",
			date:        time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
			granularity: domain.GranularityMonth,
			want:        "2024-03",
		},
		{
			name:        "Semana ISO comum",
			date:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			granularity: domain.GranularityWeek,
			want:        "2024-W02",
		},
		{
			name:        "1º de janeiro de 2025 cai na semana 1 de 2025",
			date:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			granularity: domain.GranularityWeek,
			want:        "2025-W01",
		},
		{
			name:        "29 de dezembro de 2024 ainda é a semana 52 de 2024",
			date:        time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC),
			granularity: domain.GranularityWeek,
			want:        "2024-W52",
		},
		{
			name:        "30 de dezembro de 2024 já pertence à semana 1 de 2025",
			date:        time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
			granularity: domain.GranularityWeek,
			want:        "2025-W01",
		},
		{
			name:        "1º de janeiro de 2027 pertence à semana 53 de 2026",
			date:        time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
			granularity: domain.GranularityWeek,
			want:        "2026-W53",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PeriodID(tt.date, tt.granularity))
		})
	}
}

func TestParsePeriodID(t *testing.T) {
	t.Run("Identificador de mês resolve para os limites do mês", func(t *testing.T) {
		start, end, err := ParsePeriodID("2024-02")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), end)
	})

	t.Run("Identificador de semana resolve para segunda a domingo", func(t *testing.T) {
		start, end, err := ParsePeriodID("2024-W02")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), end)
	})

	t.Run("Semana 53 existe em 2026", func(t *testing.T) {
		start, _, err := ParsePeriodID("2026-W53")
		require.NoError(t, err)
		gotYear, gotWeek := start.ISOWeek()
		assert.Equal(t, 2026, gotYear)
		assert.Equal(t, 53, gotWeek)
	})

	t.Run("Semana 53 não existe em 2024", func(t *testing.T) {
		_, _, err := ParsePeriodID("2024-W53")
		assert.Error(t, err)
	})

	t.Run("Semana fora do intervalo válido", func(t *testing.T) {
		_, _, err := ParsePeriodID("2024-W54")
		assert.Error(t, err)
	})

	t.Run("Identificador malformado", func(t *testing.T) {
		_, _, err := ParsePeriodID("banana")
		assert.Error(t, err)
	})
}

func TestPeriodIDRoundTrip(t *testing.T) {
	// Qualquer data dentro do período resolvido deve gerar o mesmo identificador
	dates := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 17, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
	}

	for _, granularity := range []domain.Granularity{domain.GranularityMonth, domain.GranularityWeek} {
		for _, date := range dates {
			id := PeriodID(date, granularity)

			start, end, err := ParsePeriodID(id)
			require.NoError(t, err, "identificador %s", id)

			assert.Equal(t, id, PeriodID(start, granularity))
			assert.Equal(t, id, PeriodID(end, granularity))
			assert.False(t, date.Before(start), "data %s antes do início do período %s", date, id)
			assert.False(t, date.After(end), "data %s depois do fim do período %s", date, id)
		}
	}
}

func TestIsCompletePeriod(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Período passado está completo", func(t *testing.T) {
		start, end := MonthBoundaries(2024, time.May)
		assert.True(t, IsCompletePeriod(start, end, now))
	})

	t.Run("Período corrente não está completo", func(t *testing.T) {
		start, end := MonthBoundaries(2024, time.June)
		assert.False(t, IsCompletePeriod(start, end, now))
	})

	t.Run("Intervalo invertido nunca está completo", func(t *testing.T) {
		start, end := MonthBoundaries(2024, time.May)
		assert.False(t, IsCompletePeriod(end, start, now))
	})
}

func TestBoundariesFor(t *testing.T) {
	date := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	monthStart, monthEnd := BoundariesFor(date, domain.GranularityMonth)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), monthStart)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), monthEnd)

	weekStart, weekEnd := BoundariesFor(date, domain.GranularityWeek)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), weekStart)
	assert.Equal(t, time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), weekEnd)
}
