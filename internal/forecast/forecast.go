package forecast

import "time"

// Record — одна трата: дата и сумма в центах.
type Record struct {
	Date        time.Time
	AmountCents int64
}

// Point — точка месячного ряда. ActualCents равен nil для будущих месяцев.
type Point struct {
	Month         time.Time
	ActualCents   *int64
	ForecastCents float64
}

const (
	trendWeight = 0.6
	maWeight    = 0.4
	maWindow    = 3
)

// Monthly агрегирует траты по календарным месяцам и строит прогноз:
// линейный тренд (МНК по индексу месяца) смешивается со скользящим средним
// в пропорции 0.6/0.4. Ряд непрерывен от первого до последнего месяца с
// данными, пропущенные месяцы учитываются с нулевой суммой, дальше идут
// monthsAhead будущих месяцев. Для пустого входа возвращается пустой ряд.
func Monthly(records []Record, monthsAhead int) []Point {
	if len(records) == 0 {
		return nil
	}
	if monthsAhead < 0 {
		monthsAhead = 0
	}

	totals := make(map[time.Time]int64, len(records))
	var first, last time.Time
	for _, r := range records {
		m := monthOf(r.Date)
		totals[m] += r.AmountCents
		if first.IsZero() || m.Before(first) {
			first = m
		}
		if last.IsZero() || m.After(last) {
			last = m
		}
	}

	var actual []int64
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		actual = append(actual, totals[m])
	}

	series := make([]float64, len(actual))
	for i, v := range actual {
		series[i] = float64(v)
	}

	slope, intercept := fitLine(series)

	points := make([]Point, 0, len(actual)+monthsAhead)
	for i, v := range actual {
		trend := slope*float64(i) + intercept
		fitted := trendWeight*trend + maWeight*trailingMean(series, i)
		observed := v
		points = append(points, Point{
			Month:         first.AddDate(0, i, 0),
			ActualCents:   &observed,
			ForecastCents: fitted,
		})
	}

	// Скользящее среднее для будущих месяцев фиксируется по концу истории
	// и не пересчитывается от прогнозных значений.
	futureMA := trailingMean(series, len(series)-1)
	for k := 1; k <= monthsAhead; k++ {
		t := float64(len(series) - 1 + k)
		trend := slope*t + intercept
		points = append(points, Point{
			Month:         last.AddDate(0, k, 0),
			ForecastCents: trendWeight*trend + maWeight*futureMA,
		})
	}

	return points
}

// fitLine подбирает прямую y = slope*t + intercept методом наименьших
// квадратов. Для вырожденного ряда из одного месяца наклон равен нулю,
// а свободный член — среднему значению.
func fitLine(y []float64) (slope, intercept float64) {
	n := float64(len(y))
	if n == 0 {
		return 0, 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumX2 += x * x
	}

	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}

	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// trailingMean возвращает среднее последних maWindow значений до индекса i
// включительно, без заглядывания вперед.
func trailingMean(y []float64, i int) float64 {
	start := i - maWindow + 1
	if start < 0 {
		start = 0
	}

	var sum float64
	for _, v := range y[start : i+1] {
		sum += v
	}
	return sum / float64(i+1-start)
}

func monthOf(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
