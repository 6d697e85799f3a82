// Package period concentra o cálculo de limites de períodos de agregação
// (meses de calendário e semanas ISO 8601). Todas as funções são puras e
// operam em UTC para evitar deslocamentos de fuso nas viradas de período.
package period

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/wmarczak/reporting-api/internal/domain"
)

var weekIDPattern = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// MonthBoundaries retorna o primeiro e o último dia do mês de calendário.
// O fim do período é o último nanossegundo do último dia.
func MonthBoundaries(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// ISOWeekBoundaries retorna segunda-feira 00:00 até domingo 23:59:59.999...
// da semana ISO que contém a data. A aritmética parte de Weekday(), mas o
// domingo é tratado como dia 7 conforme a ISO 8601.
func ISOWeekBoundaries(date time.Time) (time.Time, time.Time) {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	start := d.AddDate(0, 0, -(weekday - 1))
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}

// IsCompletePeriod indica se o período já fechou em relação ao momento de
// referência: o período corrente permite dados até hoje, períodos passados
// até o próprio último dia.
func IsCompletePeriod(start, end, referenceNow time.Time) bool {
	if start.After(end) {
		return false
	}
	return !end.After(referenceNow)
}

// PeriodID gera o identificador determinístico do período que contém a data:
// "YYYY-MM" para meses e "YYYY-Wnn" (semana ISO) para semanas. Qualquer dia
// dentro do mesmo período produz o mesmo identificador.
func PeriodID(date time.Time, granularity domain.Granularity) string {
	if granularity == domain.GranularityWeek {
		// ISOWeek já aplica a regra da primeira quinta-feira, inclusive nas
		// viradas de ano (semana 52/53 vs W01)
		year, week := date.UTC().ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	}

	return date.UTC().Format("2006-01")
}

// ParsePeriodID resolve um identificador de período de volta para seus
// limites. Identificadores malformados são erro de programação e retornam erro.
func ParsePeriodID(id string) (time.Time, time.Time, error) {
	if matches := weekIDPattern.FindStringSubmatch(id); matches != nil {
		year, _ := strconv.Atoi(matches[1])
		week, _ := strconv.Atoi(matches[2])
		if week < 1 || week > 53 {
			return time.Time{}, time.Time{}, fmt.Errorf("identificador de semana inválido: %s", id)
		}

		// 4 de janeiro está sempre na semana ISO 1
		jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
		week1Start, _ := ISOWeekBoundaries(jan4)

		start := week1Start.AddDate(0, 0, (week-1)*7)
		if gotYear, gotWeek := start.ISOWeek(); gotYear != year || gotWeek != week {
			return time.Time{}, time.Time{}, fmt.Errorf("semana inexistente no ano: %s", id)
		}

		end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
		return start, end, nil
	}

	t, err := time.Parse("2006-01", id)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("identificador de período inválido %q: %w", id, err)
	}

	start, end := MonthBoundaries(t.Year(), t.Month())
	return start, end, nil
}

// BoundariesFor retorna os limites do período que contém a data na
// granularidade informada
func BoundariesFor(date time.Time, granularity domain.Granularity) (time.Time, time.Time) {
	if granularity == domain.GranularityWeek {
		return ISOWeekBoundaries(date)
	}
	return MonthBoundaries(date.UTC().Year(), date.UTC().Month())
}
