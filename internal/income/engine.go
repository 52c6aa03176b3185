// Package income implements the income verification engine: recurring
// income stream detection, a monthly income series with stability and
// trend classification, and the affordability analysis derived from it.
package income

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"altscore/internal/domain"
	"altscore/internal/stats"
)

const monthsInSeries = 12

// Options tune one verification call.
type Options struct {
	// MonthlyExpenses, when set, is the caller-reported total monthly
	// expense figure for the affordability analysis. When nil the engine
	// assumes a fixed share of income.
	MonthlyExpenses *decimal.Decimal
}

// Engine derives income verifications from enriched transactions. It is a
// pure computation; no I/O.
type Engine struct {
	logger zerolog.Logger
	now    func() time.Time
}

// NewEngine constructs an income verification engine.
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{
		logger: logger.With().Str("component", "income_engine").Logger(),
		now:    time.Now,
	}
}

// Verify derives the income verification record for one user's
// transactions. Empty input yields an empty verification, not an error.
func (e *Engine) Verify(userID string, txs []domain.EnrichedTransaction, opts Options) *domain.IncomeVerification {
	inflows := make([]domain.EnrichedTransaction, 0, len(txs))
	for _, tx := range txs {
		if tx.WellFormed() && tx.Inflow() {
			inflows = append(inflows, tx)
		}
	}

	streams := detectStreams(inflows)

	estimated := decimal.Zero
	for _, s := range streams {
		estimated = estimated.Add(s.MonthlyAmount)
	}

	anchor := e.seriesAnchor(inflows)
	series := monthlySeries(inflows, anchor)
	trend := trendFromSeries(series)

	// No observed income is irregular by definition; a CV over an all-zero
	// series would report it as perfectly stable.
	stability := domain.IncomeIrregular
	if len(inflows) > 0 {
		window := stabilityWindow(series, earliestInflow(inflows), anchor)
		stability = ClassifyStability(stats.CoefficientOfVariation(window))
	}

	categories := make(map[domain.IncomeStreamType]decimal.Decimal)
	for _, s := range streams {
		categories[s.StreamType] = categories[s.StreamType].Add(s.MonthlyAmount)
	}

	verification := &domain.IncomeVerification{
		RequestID:              uuid.New(),
		UserID:                 userID,
		EstimatedMonthlyIncome: estimated,
		IncomeConfidence:       confidence(streams, estimated),
		Stability:              stability,
		Streams:                streams,
		Last6MonthsIncome:      series[monthsInSeries-6:],
		Last12MonthsIncome:     series,
		Trend:                  trend,
		Categories:             categories,
		Affordability:          Affordability(estimated, txs, opts.MonthlyExpenses),
		VerifiedAt:             e.now().UTC(),
	}

	e.logger.Info().
		Str("user_id", userID).
		Str("estimated_monthly_income", estimated.StringFixed(2)).
		Str("stability", string(stability)).
		Str("trend", string(trend)).
		Int("streams", len(streams)).
		Msg("income verified")

	return verification
}

// seriesAnchor is the month the 12-slot series ends at: the latest
// observed inflow, or now when there is none.
func (e *Engine) seriesAnchor(inflows []domain.EnrichedTransaction) time.Time {
	latest := time.Time{}
	for _, tx := range inflows {
		if tx.Date.After(latest) {
			latest = tx.Date
		}
	}
	if latest.IsZero() {
		return e.now().UTC()
	}
	return latest.UTC()
}

func earliestInflow(inflows []domain.EnrichedTransaction) time.Time {
	first := inflows[0].Date
	for _, tx := range inflows[1:] {
		if tx.Date.Before(first) {
			first = tx.Date
		}
	}
	return first.UTC()
}

// stabilityWindow trims the series to the months since the first observed
// inflow. Zero-filled months predating the observation window say nothing
// about volatility and would misclassify a steady short history.
func stabilityWindow(series []decimal.Decimal, first, anchor time.Time) []decimal.Decimal {
	months := (anchor.Year()-first.Year())*12 + int(anchor.Month()) - int(first.Month())
	start := len(series) - 1 - months
	if start < 0 {
		start = 0
	}
	return series[start:]
}

// ClassifyStability maps the coefficient of variation of the monthly
// income series to a stability class.
func ClassifyStability(cv float64) domain.IncomeStability {
	switch {
	case cv < 0.10:
		return domain.IncomeVeryStable
	case cv < 0.25:
		return domain.IncomeStable
	case cv < 0.50:
		return domain.IncomeVariable
	default:
		return domain.IncomeIrregular
	}
}

// ClassifyTrend compares the mean of the last three months against the
// mean of the prior three. A relative change beyond ±10% moves the trend.
func ClassifyTrend(last3, prior3 decimal.Decimal) domain.IncomeTrend {
	if prior3.IsZero() {
		if last3.Sign() > 0 {
			return domain.TrendIncreasing
		}
		return domain.TrendStable
	}

	change := last3.Sub(prior3).Div(prior3).InexactFloat64()
	switch {
	case change > 0.10:
		return domain.TrendIncreasing
	case change < -0.10:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}

func trendFromSeries(series []decimal.Decimal) domain.IncomeTrend {
	n := len(series)
	last3 := stats.Mean(series[n-3:])
	prior3 := stats.Mean(series[n-6 : n-3])
	return ClassifyTrend(last3, prior3)
}

// monthlySeries sums inflows per calendar month over the 12 months ending
// at anchor, oldest first.
func monthlySeries(inflows []domain.EnrichedTransaction, anchor time.Time) []decimal.Decimal {
	totals := make(map[string]decimal.Decimal, monthsInSeries)
	for _, tx := range inflows {
		key := tx.Date.UTC().Format("2006-01")
		totals[key] = totals[key].Add(tx.Amount)
	}

	series := make([]decimal.Decimal, monthsInSeries)
	month := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := monthsInSeries - 1; i >= 0; i-- {
		series[i] = totals[month.Format("2006-01")]
		month = month.AddDate(0, -1, 0)
	}
	return series
}

// detectStreams groups inflows by normalized source label. Grouping is by
// provenance rather than statistical clustering, matching the upstream
// platform's behaviour.
func detectStreams(inflows []domain.EnrichedTransaction) []domain.IncomeStream {
	groups := make(map[string][]domain.EnrichedTransaction)
	for _, tx := range inflows {
		groups[streamLabel(tx)] = append(groups[streamLabel(tx)], tx)
	}

	streams := make([]domain.IncomeStream, 0, len(groups))
	for label, group := range groups {
		streams = append(streams, buildStream(label, group))
	}

	sort.Slice(streams, func(i, j int) bool {
		if !streams[i].MonthlyAmount.Equal(streams[j].MonthlyAmount) {
			return streams[i].MonthlyAmount.GreaterThan(streams[j].MonthlyAmount)
		}
		return streams[i].DetectedFrom < streams[j].DetectedFrom
	})
	return streams
}

func streamLabel(tx domain.EnrichedTransaction) string {
	if name := strings.TrimSpace(tx.Merchant.Name); name != "" {
		return strings.ToUpper(name)
	}
	return "CATEGORY:" + string(tx.Category.Primary)
}

func buildStream(label string, group []domain.EnrichedTransaction) domain.IncomeStream {
	sort.Slice(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })

	monthly := make(map[string]decimal.Decimal)
	for _, tx := range group {
		key := tx.Date.UTC().Format("2006-01")
		monthly[key] = monthly[key].Add(tx.Amount)
	}
	monthlyTotals := make([]decimal.Decimal, 0, len(monthly))
	for _, v := range monthly {
		monthlyTotals = append(monthlyTotals, v)
	}

	cv := stats.CoefficientOfVariation(monthlyTotals)
	if cv > 1 {
		cv = 1
	}

	return domain.IncomeStream{
		StreamType:       classifyStream(label, group[0].Category.Primary),
		MonthlyAmount:    stats.Mean(monthlyTotals),
		Frequency:        inferFrequency(group),
		ConsistencyScore: int(decimal.NewFromFloat(100 * (1 - cv)).Round(0).IntPart()),
		DetectedFrom:     label,
		FirstSeen:        group[0].Date.UTC(),
		LastSeen:         group[len(group)-1].Date.UTC(),
	}
}

func classifyStream(label string, category domain.TransactionCategory) domain.IncomeStreamType {
	switch {
	case containsAny(label, "SALARY", "PAYROLL", "WAGE"):
		return domain.StreamEmployment
	case containsAny(label, "RENT"):
		return domain.StreamRental
	case containsAny(label, "DIVIDEND", "INTEREST", "INVEST"):
		return domain.StreamInvestment
	case containsAny(label, "REMIT", "WESTERN UNION", "MONEYGRAM"):
		return domain.StreamRemittance
	case containsAny(label, "BENEFIT", "PENSION", "GRANT", "WELFARE"):
		return domain.StreamBenefits
	case containsAny(label, "INVOICE", "SALES", "POS "):
		return domain.StreamBusiness
	case category == domain.CategoryIncome:
		return domain.StreamEmployment
	case category == domain.CategoryTransfer:
		return domain.StreamRemittance
	default:
		return domain.StreamOther
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// inferFrequency buckets the average gap between observations.
func inferFrequency(group []domain.EnrichedTransaction) domain.IncomeFrequency {
	if len(group) < 2 {
		return domain.FrequencyIrregular
	}
	span := group[len(group)-1].Date.Sub(group[0].Date)
	avgGapDays := span.Hours() / 24 / float64(len(group)-1)
	switch {
	case avgGapDays <= 10:
		return domain.FrequencyWeekly
	case avgGapDays <= 20:
		return domain.FrequencyBiweekly
	case avgGapDays <= 45:
		return domain.FrequencyMonthly
	default:
		return domain.FrequencyIrregular
	}
}

// confidence is the amount-weighted average of stream consistency.
func confidence(streams []domain.IncomeStream, total decimal.Decimal) float64 {
	if len(streams) == 0 || total.IsZero() {
		return 0
	}
	weighted := decimal.Zero
	for _, s := range streams {
		weighted = weighted.Add(s.MonthlyAmount.Mul(decimal.NewFromInt(int64(s.ConsistencyScore))))
	}
	return weighted.Div(total).Div(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}
