package reports

import (
	"context"
	"sort"
	"time"

	"github.com/poultrytrade/ledger_backend/models"
	"github.com/poultrytrade/ledger_backend/utils"
	"github.com/shopspring/decimal"
)

type DailySalesBreakdown struct {
	Date           string          `json:"date"`
	TotalKgs       decimal.Decimal `json:"total_kgs"`
	TotalSalePrice decimal.Decimal `json:"total_sale_price"`
	SalesCount     int             `json:"sales_count"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
}

type TopCustomer struct {
	CustomerId     int             `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	TotalKgs       decimal.Decimal `json:"total_kgs"`
	TotalSalePrice decimal.Decimal `json:"total_sale_price"`
	SalesCount     int             `json:"sales_count"`
}

type SalesAnalyticsResponse struct {
	StartDate        string                `json:"start_date"`
	EndDate          string                `json:"end_date"`
	TotalKgsSold     decimal.Decimal       `json:"total_kgs_sold"`
	TotalSalePrice   decimal.Decimal       `json:"total_sale_price"`
	TotalSalesCount  int                   `json:"total_sales_count"`
	AverageRatePerKg decimal.Decimal       `json:"average_rate_per_kg"`
	TotalProfit      decimal.Decimal       `json:"total_profit"`
	DailyBreakdown   []DailySalesBreakdown `json:"daily_breakdown"`
	TopCustomers     []TopCustomer         `json:"top_customers"`
	Message          string                `json:"message,omitempty"`
}

const topCustomerLimit = 10

func computeSalesAnalytics(start, end time.Time, sales []*models.Sale) *SalesAnalyticsResponse {
	report := &SalesAnalyticsResponse{
		StartDate:        start.Format(utils.DateLayout),
		EndDate:          end.Format(utils.DateLayout),
		TotalKgsSold:     models.ZeroAmount,
		TotalSalePrice:   models.ZeroAmount,
		AverageRatePerKg: models.ZeroAmount,
		TotalProfit:      models.ZeroAmount,
		DailyBreakdown:   []DailySalesBreakdown{},
		TopCustomers:     []TopCustomer{},
	}

	if len(sales) == 0 {
		report.Message = "No sales found for the selected date range"
		return report
	}

	dayIndex := map[string]int{}
	customerIndex := map[int]int{}
	customers := []TopCustomer{}

	for _, s := range sales {
		report.TotalKgsSold = report.TotalKgsSold.Add(s.Kg)
		report.TotalSalePrice = report.TotalSalePrice.Add(s.TotalAmount())
		report.TotalSalesCount++
		report.TotalProfit = report.TotalProfit.Add(s.Profit())

		day := s.Date.Format(utils.DateLayout)
		di, ok := dayIndex[day]
		if !ok {
			di = len(report.DailyBreakdown)
			dayIndex[day] = di
			report.DailyBreakdown = append(report.DailyBreakdown, DailySalesBreakdown{
				Date:           day,
				TotalKgs:       models.ZeroAmount,
				TotalSalePrice: models.ZeroAmount,
				TotalProfit:    models.ZeroAmount,
			})
		}
		report.DailyBreakdown[di].TotalKgs = report.DailyBreakdown[di].TotalKgs.Add(s.Kg)
		report.DailyBreakdown[di].TotalSalePrice = report.DailyBreakdown[di].TotalSalePrice.Add(s.TotalAmount())
		report.DailyBreakdown[di].SalesCount++
		report.DailyBreakdown[di].TotalProfit = report.DailyBreakdown[di].TotalProfit.Add(s.Profit())

		ci, ok := customerIndex[s.CustomerId]
		if !ok {
			ci = len(customers)
			customerIndex[s.CustomerId] = ci
			name := ""
			if s.Customer != nil {
				name = s.Customer.Name
			}
			customers = append(customers, TopCustomer{
				CustomerId:     s.CustomerId,
				CustomerName:   name,
				TotalKgs:       models.ZeroAmount,
				TotalSalePrice: models.ZeroAmount,
			})
		}
		customers[ci].TotalKgs = customers[ci].TotalKgs.Add(s.Kg)
		customers[ci].TotalSalePrice = customers[ci].TotalSalePrice.Add(s.TotalAmount())
		customers[ci].SalesCount++
	}

	if report.TotalKgsSold.IsPositive() {
		report.AverageRatePerKg = report.TotalSalePrice.DivRound(report.TotalKgsSold, 3)
	}

	// descending by revenue; ties keep first-encountered order
	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].TotalSalePrice.GreaterThan(customers[j].TotalSalePrice)
	})
	if len(customers) > topCustomerLimit {
		customers = customers[:topCustomerLimit]
	}
	report.TopCustomers = customers

	return report
}

// GetSalesAnalytics builds sales analytics over a required date range.
func GetSalesAnalytics(ctx context.Context, start, end *time.Time) (*SalesAnalyticsResponse, error) {
	if start == nil || end == nil {
		return nil, utils.NewValidationError("start_date and end_date are required")
	}
	startDate := utils.DateOnly(*start)
	endDate := utils.DateOnly(*end)

	sales, err := models.FindSalesByDateRange(ctx, &startDate, &endDate)
	if err != nil {
		return nil, err
	}

	return computeSalesAnalytics(startDate, endDate, sales), nil
}
