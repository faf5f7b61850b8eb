package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fercho159-aq/cartera/internal/budget"
	"github.com/fercho159-aq/cartera/internal/models"
	"github.com/fercho159-aq/cartera/internal/period"
)

const defaultMonthsAhead = 3

// Weekly sources pay on fixed approximated slots rather than a true 7-day cadence.
var weeklySlots = []int{7, 14, 21, 28}

var thirty = decimal.NewFromInt(30)

// GenerateForecast projects the caller's cash flow monthsAhead months out,
// starting with the current month. The projection covers the requested
// ledger scope: the personal ledger when accountID is nil, otherwise the
// shared account's pooled transactions and sources.
func (s *Service) GenerateForecast(userID int64, accountID *int64, monthsAhead int) (*models.ForecastResult, error) {
	if monthsAhead <= 0 {
		monthsAhead = defaultMonthsAhead
	}
	if err := s.checkLedger(userID, accountID); err != nil {
		return nil, err
	}

	now := s.now()

	sources, err := s.store.ForecastIncomeSources(userID, accountID)
	if err != nil {
		return nil, err
	}

	avgMonthlyExpense, err := s.averageMonthlyExpense(userID, accountID, now)
	if err != nil {
		return nil, err
	}

	monthIncome, monthExpense, err := s.store.MonthTotals(userID, accountID, now.Year(), now.Month())
	if err != nil {
		return nil, err
	}
	currentBalance := monthIncome.Sub(monthExpense)
	avgDailyExpense := avgMonthlyExpense.Div(thirty)

	result := &models.ForecastResult{
		CurrentBalance:    currentBalance,
		AvgMonthlyExpense: avgMonthlyExpense,
		AvgDailyExpense:   avgDailyExpense,
		IncomeSources:     summarizeSources(sources),
		Forecast:          make([]models.ForecastMonth, 0, monthsAhead),
	}

	carryIn := currentBalance
	cursor := period.MonthStart(now)
	for i := 0; i < monthsAhead; i++ {
		month := buildForecastMonth(sources, cursor.Year(), cursor.Month(), carryIn, avgMonthlyExpense, avgDailyExpense)
		carryIn = month.ProjectedBalance
		result.Forecast = append(result.Forecast, month)
		cursor = cursor.AddDate(0, 1, 0)
	}

	next, daysUntil := nextPaydayLookahead(sources, now)
	result.NextPayday = next
	if next == nil {
		// No configured inflows; fall back to the days left in the month.
		daysUntil = period.DaysInMonth(now.Year(), now.Month()) - now.Day()
		if daysUntil < 1 {
			daysUntil = 1
		}
	}
	result.DaysUntilNextPay = daysUntil
	result.SmartDailyBudget = budget.Smart(currentBalance, daysUntil)

	s.log.Debugf("Forecast generated for user %d: %d months, balance %s", userID, monthsAhead, currentBalance)
	return result, nil
}

// averageMonthlyExpense divides the trailing 3-month expense total by the
// number of distinct months that actually had expenses, so empty months do
// not dilute the average. No history at all yields exactly zero.
func (s *Service) averageMonthlyExpense(userID int64, accountID *int64, now time.Time) (decimal.Decimal, error) {
	total, months, err := s.store.ExpenseWindow(userID, accountID, now.AddDate(0, -3, 0), now)
	if err != nil {
		return decimal.Zero, err
	}
	if months == 0 {
		return decimal.Zero, nil
	}
	return total.Div(decimal.NewFromInt(int64(months))), nil
}

// payment is one scheduled disbursement of an income source within a month.
type payment struct {
	day    int
	amount decimal.Decimal
	source string
}

// monthPayments resolves a source's schedule for the given month: the actual
// days it pays on (clamped to the month's length) and the amount per payment,
// which is the source's effective amount split evenly across the payments.
func monthPayments(src *models.IncomeSource, year int, month time.Month) []payment {
	var days []int
	switch src.Frequency {
	case models.FrequencyWeekly:
		days = weeklySlots
	case models.FrequencyBiweekly:
		for _, d := range src.PayDays {
			days = append(days, int(d))
			if len(days) == 2 {
				break
			}
		}
	case models.FrequencyMonthly:
		day := 30
		if len(src.PayDays) > 0 {
			day = int(src.PayDays[0])
		}
		days = []int{day}
	default: // custom
		for _, d := range src.PayDays {
			days = append(days, int(d))
		}
	}
	if len(days) == 0 {
		return nil
	}

	perPayment := src.EffectiveAmount().Div(decimal.NewFromInt(int64(len(days))))
	payments := make([]payment, 0, len(days))
	for _, day := range days {
		payments = append(payments, payment{
			day:    period.ClampDay(day, year, month),
			amount: perPayment,
			source: src.Name,
		})
	}
	return payments
}

// buildForecastMonth computes one projected month: the payday buckets with
// their running balances, and the coarser month-level balance that feeds the
// next month. The two figures pace expenses differently and are deliberately
// not reconciled.
func buildForecastMonth(sources []models.IncomeSource, year int, month time.Month,
	carryIn, avgMonthlyExpense, avgDailyExpense decimal.Decimal) models.ForecastMonth {

	buckets := make(map[int]*models.ForecastDay)
	for i := range sources {
		for _, p := range monthPayments(&sources[i], year, month) {
			day, ok := buckets[p.day]
			if !ok {
				day = &models.ForecastDay{
					Date:       time.Date(year, month, p.day, 0, 0, 0, 0, time.UTC),
					DayOfMonth: p.day,
					IsPayday:   true,
				}
				buckets[p.day] = day
			}
			day.Income = day.Income.Add(p.amount)
			day.IncomeDetails = append(day.IncomeDetails, models.PaydaySource{Name: p.source, Amount: p.amount})
		}
	}

	paydays := make([]models.ForecastDay, 0, len(buckets))
	for _, day := range buckets {
		paydays = append(paydays, *day)
	}
	sort.Slice(paydays, func(i, j int) bool { return paydays[i].DayOfMonth < paydays[j].DayOfMonth })

	totalIncome := decimal.Zero
	running := carryIn
	prevDay := 0
	for i := range paydays {
		elapsed := paydays[i].DayOfMonth - prevDay
		running = running.Sub(avgDailyExpense.Mul(decimal.NewFromInt(int64(elapsed))))
		running = running.Add(paydays[i].Income)
		paydays[i].ProjectedBalance = running
		totalIncome = totalIncome.Add(paydays[i].Income)
		prevDay = paydays[i].DayOfMonth
	}

	return models.ForecastMonth{
		Month:             month.String(),
		MonthNum:          int(month),
		Year:              year,
		TotalIncome:       totalIncome,
		ProjectedExpenses: avgMonthlyExpense,
		ProjectedBalance:  carryIn.Add(totalIncome).Sub(avgMonthlyExpense),
		Paydays:           paydays,
	}
}

// nextPaydayLookahead finds the nearest upcoming inflow: the smallest
// effective pay day strictly after today across all sources, wrapping to
// next month's earliest pay day when none remain in the current month.
// Returns nil when no source schedules any payment.
func nextPaydayLookahead(sources []models.IncomeSource, now time.Time) (*models.NextPayday, int) {
	year, month, today := now.Year(), now.Month(), now.Day()

	byDay := make(map[int][]models.PaydaySource)
	minDay := 0
	for i := range sources {
		for _, p := range monthPayments(&sources[i], year, month) {
			byDay[p.day] = append(byDay[p.day], models.PaydaySource{Name: p.source, Amount: p.amount})
			if minDay == 0 || p.day < minDay {
				minDay = p.day
			}
		}
	}
	if len(byDay) == 0 {
		return nil, 0
	}

	bestDay := 0
	for day := range byDay {
		if day > today && (bestDay == 0 || day < bestDay) {
			bestDay = day
		}
	}
	if bestDay != 0 {
		return &models.NextPayday{
			Day:       bestDay,
			DaysUntil: bestDay - today,
			Sources:   byDay[bestDay],
		}, bestDay - today
	}

	// Nothing left this month; wrap to the earliest pay day of next month.
	daysLeft := period.DaysInMonth(year, month) - today
	return &models.NextPayday{
		Day:       minDay,
		DaysUntil: daysLeft + minDay,
		Sources:   byDay[minDay],
	}, daysLeft + minDay
}

func summarizeSources(sources []models.IncomeSource) []models.ForecastSource {
	out := make([]models.ForecastSource, 0, len(sources))
	for i := range sources {
		src := &sources[i]
		out = append(out, models.ForecastSource{
			ID:        src.ID,
			Name:      src.Name,
			Type:      src.Type,
			Amount:    src.EffectiveAmount(),
			Frequency: src.Frequency,
			PayDays:   src.PayDays,
		})
	}
	return out
}
