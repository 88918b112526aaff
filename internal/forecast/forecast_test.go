package forecast

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// TestMonthlyEmpty проверяет пустой результат для пустого входа.
func TestMonthlyEmpty(t *testing.T) {
	if got := Monthly(nil, 3); len(got) != 0 {
		t.Fatalf("expected empty series, got %d points", len(got))
	}
}

// TestMonthlySingleMonth проверяет вырожденный ряд из одного месяца.
func TestMonthlySingleMonth(t *testing.T) {
	records := []Record{{Date: day(2024, time.January, 15), AmountCents: 10000}}

	points := Monthly(records, 1)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}

	if points[0].Month != day(2024, time.January, 1) {
		t.Fatalf("unexpected first month: %v", points[0].Month)
	}
	if points[0].ActualCents == nil || *points[0].ActualCents != 10000 {
		t.Fatalf("expected actual 10000, got %v", points[0].ActualCents)
	}
	if math.Abs(points[0].ForecastCents-10000) > 1e-9 {
		t.Fatalf("expected fitted 10000, got %f", points[0].ForecastCents)
	}

	if points[1].Month != day(2024, time.February, 1) {
		t.Fatalf("unexpected future month: %v", points[1].Month)
	}
	if points[1].ActualCents != nil {
		t.Fatal("expected future actual to be nil")
	}
	if math.Abs(points[1].ForecastCents-10000) > 1e-9 {
		t.Fatalf("expected forecast 10000, got %f", points[1].ForecastCents)
	}
}

// TestMonthlyGapFilling проверяет непрерывность ряда и нулевые месяцы.
func TestMonthlyGapFilling(t *testing.T) {
	records := []Record{
		{Date: day(2024, time.January, 3), AmountCents: 5000},
		{Date: day(2024, time.April, 20), AmountCents: 7000},
	}

	points := Monthly(records, 2)
	if len(points) != 6 {
		t.Fatalf("expected 4 historical + 2 future points, got %d", len(points))
	}

	for i, p := range points {
		want := day(2024, time.January, 1).AddDate(0, i, 0)
		if p.Month != want {
			t.Fatalf("point %d: expected month %v, got %v", i, want, p.Month)
		}
	}

	for _, i := range []int{1, 2} {
		if points[i].ActualCents == nil {
			t.Fatalf("point %d: expected zero-filled actual, got nil", i)
		}
		if *points[i].ActualCents != 0 {
			t.Fatalf("point %d: expected actual 0, got %d", i, *points[i].ActualCents)
		}
	}

	for _, i := range []int{4, 5} {
		if points[i].ActualCents != nil {
			t.Fatalf("point %d: expected future actual to be nil", i)
		}
	}
}

// TestMonthlyLinearTrend проверяет прогноз на идеально линейном ряде.
func TestMonthlyLinearTrend(t *testing.T) {
	records := []Record{
		{Date: day(2024, time.January, 10), AmountCents: 10000},
		{Date: day(2024, time.February, 10), AmountCents: 20000},
		{Date: day(2024, time.March, 10), AmountCents: 30000},
		{Date: day(2024, time.April, 10), AmountCents: 40000},
	}

	points := Monthly(records, 1)
	if len(points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(points))
	}

	// Тренд для мая — 50000, среднее трех последних месяцев — 30000.
	want := 0.6*50000 + 0.4*30000
	if math.Abs(points[4].ForecastCents-want) > 1e-9 {
		t.Fatalf("expected forecast %f, got %f", want, points[4].ForecastCents)
	}

	// Для апреля тренд совпадает с фактом, среднее то же.
	wantFitted := 0.6*40000 + 0.4*30000
	if math.Abs(points[3].ForecastCents-wantFitted) > 1e-9 {
		t.Fatalf("expected fitted %f, got %f", wantFitted, points[3].ForecastCents)
	}
}

// TestMonthlyOrderIndependence проверяет независимость от порядка записей.
func TestMonthlyOrderIndependence(t *testing.T) {
	ordered := []Record{
		{Date: day(2024, time.January, 5), AmountCents: 1200},
		{Date: day(2024, time.January, 25), AmountCents: 800},
		{Date: day(2024, time.February, 14), AmountCents: 4500},
		{Date: day(2024, time.March, 1), AmountCents: 300},
	}
	shuffled := []Record{ordered[2], ordered[0], ordered[3], ordered[1]}

	got := Monthly(shuffled, 3)
	want := Monthly(ordered, 3)

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected identical output, got %v and %v", got, want)
	}
}

// TestMonthlyZeroAhead проверяет поведение без будущих месяцев.
func TestMonthlyZeroAhead(t *testing.T) {
	records := []Record{
		{Date: day(2024, time.January, 5), AmountCents: 1000},
		{Date: day(2024, time.February, 5), AmountCents: 2000},
	}

	points := Monthly(records, 0)
	if len(points) != 2 {
		t.Fatalf("expected 2 historical points, got %d", len(points))
	}

	for i, p := range points {
		if p.ActualCents == nil {
			t.Fatalf("point %d: expected actual to be set", i)
		}
	}
}

// TestMonthlyDeterministic проверяет детерминированность повторного вызова.
func TestMonthlyDeterministic(t *testing.T) {
	records := []Record{
		{Date: day(2023, time.November, 2), AmountCents: 9100},
		{Date: day(2024, time.January, 7), AmountCents: 2050},
		{Date: day(2024, time.February, 28), AmountCents: 700},
	}

	first := Monthly(records, 4)
	second := Monthly(records, 4)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical output on repeated calls")
	}
}

// TestFitLineDegenerate проверяет запасной вариант для вырожденного МНК.
func TestFitLineDegenerate(t *testing.T) {
	slope, intercept := fitLine([]float64{4200})
	if slope != 0 {
		t.Fatalf("expected zero slope, got %f", slope)
	}
	if intercept != 4200 {
		t.Fatalf("expected intercept 4200, got %f", intercept)
	}
}

// TestTrailingMean проверяет окно скользящего среднего.
func TestTrailingMean(t *testing.T) {
	series := []float64{10, 20, 30, 40}

	cases := []struct {
		index int
		want  float64
	}{
		{0, 10},
		{1, 15},
		{2, 20},
		{3, 30},
	}

	for _, tc := range cases {
		if got := trailingMean(series, tc.index); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("index %d: expected %f, got %f", tc.index, tc.want, got)
		}
	}
}
