package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

type stubAnalytics struct {
	sales []repository.SaleAmount
	calls int
}

func (s *stubAnalytics) SalesBetween(_ context.Context, start, end time.Time) ([]repository.SaleAmount, error) {
	s.calls++
	var out []repository.SaleAmount
	for _, sa := range s.sales {
		if !sa.CreatedAt.Before(start) && !sa.CreatedAt.After(end) {
			out = append(out, sa)
		}
	}
	return out, nil
}

func (s *stubAnalytics) CountClients(context.Context) (int, error)  { return 3, nil }
func (s *stubAnalytics) CountProducts(context.Context) (int, error) { return 0, nil }
func (s *stubAnalytics) CountOrders(context.Context) (int, error)   { return 7, nil }

type mapCache map[string][]dto.WeeklySalesBucketDTO

func (m mapCache) GetWeeklySales(_ context.Context, key string) ([]dto.WeeklySalesBucketDTO, bool, error) {
	b, ok := m[key]
	return b, ok, nil
}

func (m mapCache) SetWeeklySales(_ context.Context, key string, buckets []dto.WeeklySalesBucketDTO) error {
	m[key] = buckets
	return nil
}

func sale(at string, amount string) repository.SaleAmount {
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		panic(err)
	}
	return repository.SaleAmount{CreatedAt: t, TotalAmount: decimal.RequireFromString(amount)}
}

// miércoles
var now = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

func TestWeeklySales_BucketsConSemanaVacia(t *testing.T) {
	repo := &stubAnalytics{sales: []repository.SaleAmount{
		sale("2025-09-20T10:00:00Z", "99.00"), // fuera de rango
		sale("2025-09-30T10:00:00Z", "10.00"),
		sale("2025-10-13T00:00:00Z", "5.25"), // lunes 00:00 abre la semana
		sale("2025-10-14T18:30:00Z", "4.75"),
	}}
	uc := NewWeeklySalesUseCase(repo, nil, time.UTC)

	buckets, err := uc.WeeklySales(context.Background(), 3, now, "")
	require.NoError(t, err)
	require.Len(t, buckets, 3)

	assert.Equal(t, "2025-09-29", buckets[0].WeekStart)
	assert.Equal(t, "29 sep – 05 oct", buckets[0].WeekLabel)
	assert.Equal(t, 1, buckets[0].Count)
	assert.True(t, buckets[0].Total.Equal(decimal.RequireFromString("10")))

	assert.Equal(t, "2025-10-06", buckets[1].WeekStart)
	assert.Equal(t, 0, buckets[1].Count)
	assert.True(t, buckets[1].Total.IsZero())

	assert.Equal(t, "2025-10-13", buckets[2].WeekStart)
	assert.Equal(t, 2, buckets[2].Count)
	assert.True(t, buckets[2].Total.Equal(decimal.RequireFromString("10")))
}

func TestWeeklySales_Limites(t *testing.T) {
	uc := NewWeeklySalesUseCase(&stubAnalytics{}, nil, nil)
	ctx := context.Background()

	b, err := uc.WeeklySales(ctx, 0, now, "")
	require.NoError(t, err)
	assert.Len(t, b, MinWeeks)

	b, err = uc.WeeklySales(ctx, 50, now, "")
	require.NoError(t, err)
	assert.Len(t, b, MaxWeeks)
	assert.Equal(t, "2025-10-13", b[len(b)-1].WeekStart, "la última semana contiene now")
}

func TestParseWeeks(t *testing.T) {
	assert.Equal(t, DefaultWeeks, ParseWeeks(""))
	assert.Equal(t, DefaultWeeks, ParseWeeks("seis"))
	assert.Equal(t, 3, ParseWeeks(" 3 "))
	assert.Equal(t, MinWeeks, ParseWeeks("-4"))
	assert.Equal(t, MaxWeeks, ParseWeeks("13"))
}

func TestWeeklySales_Idioma(t *testing.T) {
	uc := NewWeeklySalesUseCase(&stubAnalytics{}, nil, time.UTC)
	ctx := context.Background()

	cases := map[string]string{
		"":               "13 oct – 19 oct",
		"es-AR":          "13 oct – 19 oct",
		"pt-BR,pt;q=0.9": "13 out – 19 out",
		"en-US,en;q=0.8": "13 Oct – 19 Oct",
		"fr-FR":          "13 oct – 19 oct",
	}
	for header, want := range cases {
		b, err := uc.WeeklySales(ctx, 1, now, header)
		require.NoError(t, err)
		assert.Equal(t, want, b[0].WeekLabel, header)
	}

	b, err := uc.WeeklySales(ctx, 3, now, "pt-BR")
	require.NoError(t, err)
	assert.Equal(t, "29 set – 05 out", b[0].WeekLabel)
}

func TestWeeklySales_ZonaHoraria(t *testing.T) {
	brt := time.FixedZone("BRT", -3*3600)
	// Lunes 01:00 UTC = domingo 22:00 en BRT: cuenta en la semana anterior.
	repo := &stubAnalytics{sales: []repository.SaleAmount{sale("2025-10-13T01:00:00Z", "8.00")}}
	uc := NewWeeklySalesUseCase(repo, nil, brt)

	b, err := uc.WeeklySales(context.Background(), 2, now, "")
	require.NoError(t, err)
	assert.Equal(t, 1, b[0].Count)
	assert.Equal(t, 0, b[1].Count)
}

func TestWeeklySales_UsaCache(t *testing.T) {
	repo := &stubAnalytics{sales: []repository.SaleAmount{sale("2025-10-14T10:00:00Z", "1.00")}}
	cache := mapCache{}
	uc := NewWeeklySalesUseCase(repo, cache, time.UTC)
	ctx := context.Background()

	first, err := uc.WeeklySales(ctx, 2, now, "")
	require.NoError(t, err)
	second, err := uc.WeeklySales(ctx, 2, now, "")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, first, second)
	assert.Len(t, cache, 1)

	_, err = uc.WeeklySales(ctx, 2, now, "en")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls, "otro idioma es otra entrada")
}

func TestStartOfWeek(t *testing.T) {
	sunday := time.Date(2025, 10, 19, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC), StartOfWeek(sunday))
	monday := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, StartOfWeek(monday))
}
