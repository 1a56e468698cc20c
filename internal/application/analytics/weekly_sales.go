package analytics

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// Límites del parámetro weeks.
const (
	DefaultWeeks = 6
	MinWeeks     = 1
	MaxWeeks     = 12
)

var (
	supportedLocales = []language.Tag{
		language.Spanish, // por defecto
		language.BrazilianPortuguese,
		language.English,
	}
	localeMatcher = language.NewMatcher(supportedLocales)

	monthAbbrev = [][12]string{
		{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"},
		{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"},
		{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	}
)

// ParseWeeks interpreta el query param weeks: vacío o inválido = 6, acotado a [1, 12].
func ParseWeeks(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultWeeks
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultWeeks
	}
	return clampWeeks(n)
}

func clampWeeks(n int) int {
	if n < MinWeeks {
		return MinWeeks
	}
	if n > MaxWeeks {
		return MaxWeeks
	}
	return n
}

// WeeklySalesUseCase agrega ventas en semanas lunes-domingo.
type WeeklySalesUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         WeeklySalesCache
	loc           *time.Location
}

// NewWeeklySalesUseCase construye el caso de uso. cache puede ser nil; loc nil = UTC.
func NewWeeklySalesUseCase(analyticsRepo repository.AnalyticsRepository, cache WeeklySalesCache, loc *time.Location) *WeeklySalesUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &WeeklySalesUseCase{analyticsRepo: analyticsRepo, cache: cache, loc: loc}
}

// WeeklySales devuelve exactamente `weeks` buckets en orden cronológico; el último contiene now.
// Las semanas sin ventas se devuelven con total 0 y count 0. acceptLanguage elige el idioma
// de las abreviaturas de mes de WeekLabel (es, pt-BR, en).
func (uc *WeeklySalesUseCase) WeeklySales(ctx context.Context, weeks int, now time.Time, acceptLanguage string) ([]dto.WeeklySalesBucketDTO, error) {
	weeks = clampWeeks(weeks)
	locale := matchLocale(acceptLanguage)

	now = now.In(uc.loc)
	first := StartOfWeek(now).AddDate(0, 0, -7*(weeks-1))

	cacheKey := fmt.Sprintf("%d:%d:%s:%s", weeks, locale, first.Format("2006-01-02"), uc.loc.String())
	if uc.cache != nil {
		if cached, ok, err := uc.cache.GetWeeklySales(ctx, cacheKey); err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("leer cache de reporte semanal")
		} else if ok {
			return cached, nil
		}
	}

	starts := make([]time.Time, weeks+1)
	for i := 0; i <= weeks; i++ {
		starts[i] = first.AddDate(0, 0, 7*i)
	}

	sales, err := uc.analyticsRepo.SalesBetween(ctx, first, now)
	if err != nil {
		return nil, domain.NewPersistenceError("ventas por semana", err)
	}

	totals := make([]decimal.Decimal, weeks)
	counts := make([]int, weeks)
	for _, s := range sales {
		at := s.CreatedAt.In(uc.loc)
		for i := 0; i < weeks; i++ {
			if !at.Before(starts[i]) && at.Before(starts[i+1]) {
				totals[i] = totals[i].Add(s.TotalAmount)
				counts[i]++
				break
			}
		}
	}

	buckets := make([]dto.WeeklySalesBucketDTO, weeks)
	for i := 0; i < weeks; i++ {
		buckets[i] = dto.WeeklySalesBucketDTO{
			WeekStart: starts[i].Format("2006-01-02"),
			WeekLabel: weekLabel(starts[i], locale),
			Total:     totals[i].Round(2),
			Count:     counts[i],
		}
	}

	if uc.cache != nil {
		if err := uc.cache.SetWeeklySales(ctx, cacheKey, buckets); err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("guardar cache de reporte semanal")
		}
	}
	return buckets, nil
}

// StartOfWeek devuelve el lunes 00:00 de la semana de t, en la zona de t.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // lunes = 0
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
}

// weekLabel "dd MMM – dd MMM" del lunes al domingo.
func weekLabel(start time.Time, locale int) string {
	end := start.AddDate(0, 0, 6)
	months := monthAbbrev[locale]
	return fmt.Sprintf("%02d %s – %02d %s", start.Day(), months[start.Month()-1], end.Day(), months[end.Month()-1])
}

// matchLocale devuelve el índice en supportedLocales que mejor coincide con Accept-Language.
func matchLocale(acceptLanguage string) int {
	if strings.TrimSpace(acceptLanguage) == "" {
		return 0
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return 0
	}
	_, idx, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return 0
	}
	return idx
}
