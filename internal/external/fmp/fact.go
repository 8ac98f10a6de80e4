package fmp

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/mizan/screener/internal/domain"
)

type profile struct {
	CompanyName string  `json:"companyName"`
	Price       float64 `json:"price"`
	MarketCap   float64 `json:"marketCap"`
	EPS         float64 `json:"eps"`
	Industry    string  `json:"industry"`
	Sector      string  `json:"sector"`
	Description string  `json:"description"`
	Currency    string  `json:"currency"`
}

type incomeStatement struct {
	Revenue         float64 `json:"revenue"`
	NetIncome       float64 `json:"netIncome"`
	OperatingIncome float64 `json:"operatingIncome"`
	EBITDA          float64 `json:"ebitda"`
	InterestExpense float64 `json:"interestExpense"`
	InterestIncome  float64 `json:"interestIncome"`
	EPS             float64 `json:"eps"`
	EPSDiluted      float64 `json:"epsdiluted"`
}

type balanceSheet struct {
	TotalAssets             float64 `json:"totalAssets"`
	TotalDebt               float64 `json:"totalDebt"`
	CashAndCashEquivalents  float64 `json:"cashAndCashEquivalents"`
	TotalStockholdersEquity float64 `json:"totalStockholdersEquity"`
	TotalCurrentAssets      float64 `json:"totalCurrentAssets"`
	TotalCurrentLiabilities float64 `json:"totalCurrentLiabilities"`
	PropertyPlantEquipment  float64 `json:"propertyPlantEquipmentNet"`
	Goodwill                float64 `json:"goodwill"`
	IntangibleAssets        float64 `json:"intangibleAssets"`
	Inventory               float64 `json:"inventory"`
}

type cashFlowStatement struct {
	FreeCashFlow float64 `json:"freeCashFlow"`
}

// FetchFact retrieves profile and financial statements for one ticker and
// assembles a normalized fact. All derived ratios are computed here from the
// free statement endpoints.
func (c *Client) FetchFact(ctx context.Context, ticker string) (*domain.FinancialFact, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))

	var profiles []profile
	if err := c.get(ctx, "/stable/profile", url.Values{"symbol": {symbol}}, &profiles); err != nil {
		return nil, fmt.Errorf("fetch profile for %s: %w", symbol, err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, symbol)
	}
	p := profiles[0]

	var incomes []incomeStatement
	if err := c.get(ctx, "/stable/income-statement",
		url.Values{"symbol": {symbol}, "period": {"annual"}, "limit": {"2"}}, &incomes); err != nil {
		return nil, fmt.Errorf("fetch income statement for %s: %w", symbol, err)
	}

	var balances []balanceSheet
	if err := c.get(ctx, "/stable/balance-sheet-statement",
		url.Values{"symbol": {symbol}, "period": {"annual"}, "limit": {"1"}}, &balances); err != nil {
		return nil, fmt.Errorf("fetch balance sheet for %s: %w", symbol, err)
	}

	var cashflows []cashFlowStatement
	if err := c.get(ctx, "/stable/cash-flow-statement",
		url.Values{"symbol": {symbol}, "period": {"annual"}, "limit": {"1"}}, &cashflows); err != nil {
		return nil, fmt.Errorf("fetch cash-flow statement for %s: %w", symbol, err)
	}

	var income incomeStatement
	if len(incomes) > 0 {
		income = incomes[0]
	}
	var balance balanceSheet
	if len(balances) > 0 {
		balance = balances[0]
	}
	var cashflow cashFlowStatement
	if len(cashflows) > 0 {
		cashflow = cashflows[0]
	}

	fact := c.buildFact(symbol, p, income, incomes, balance, cashflow)

	// Momentum needs a second round trip; a failure there never blocks the
	// analysis.
	fact.Momentum3M = c.momentum(ctx, symbol)

	fact.Normalize()

	c.logger.WithFields(map[string]interface{}{
		"ticker": symbol,
		"name":   fact.Name,
	}).Debug("Fetched financial fact")
	return fact, nil
}

func (c *Client) buildFact(symbol string, p profile, income incomeStatement,
	incomes []incomeStatement, balance balanceSheet, cashflow cashFlowStatement) *domain.FinancialFact {

	name := p.CompanyName
	if name == "" {
		name = symbol
	}

	marketCap := p.MarketCap
	if marketCap <= 0 {
		marketCap = 1
	}

	price := p.Price
	sharesOut := 0.0
	if price > 0 {
		sharesOut = marketCap / price
	}

	interestExpense := math.Abs(income.InterestExpense)
	epsFromIncome := income.EPS
	if epsFromIncome == 0 {
		epsFromIncome = income.EPSDiluted
	}

	totalAssets := balance.TotalAssets
	if totalAssets <= 0 {
		totalAssets = 1
	}

	// Real assets: tangible and intangible fixed assets plus inventory.
	// When the statement omits the breakdown, derive it as everything that
	// is not current.
	illiquidAssets := balance.PropertyPlantEquipment + balance.Goodwill +
		balance.IntangibleAssets + balance.Inventory
	if illiquidAssets == 0 && balance.TotalCurrentAssets > 0 {
		illiquidAssets = totalAssets - balance.TotalCurrentAssets
	}

	var peRatio *float64
	if epsFromIncome > 0 {
		peRatio = domain.Float(price / epsFromIncome)
	}

	var pbRatio *float64
	if sharesOut > 0 && balance.TotalStockholdersEquity > 0 {
		bvps := balance.TotalStockholdersEquity / sharesOut
		if bvps > 0 {
			pbRatio = domain.Float(price / bvps)
		}
	}

	// EPS preference: profile first, then income statement, then derived.
	eps := p.EPS
	if eps == 0 {
		eps = epsFromIncome
	}
	if eps == 0 && sharesOut > 0 {
		eps = income.NetIncome / sharesOut
	}
	var epsPtr *float64
	if eps != 0 {
		epsPtr = domain.Float(eps)
	}

	roe := 0.0
	debtToEquity := 0.0
	if balance.TotalStockholdersEquity > 0 {
		roe = income.NetIncome / balance.TotalStockholdersEquity * 100
		debtToEquity = balance.TotalDebt / balance.TotalStockholdersEquity * 100
	}

	operatingMargin := 0.0
	if income.Revenue > 0 {
		operatingMargin = income.OperatingIncome / income.Revenue * 100
	}

	fcfYield := cashflow.FreeCashFlow / marketCap * 100

	currentRatio := 0.0
	if balance.TotalCurrentLiabilities > 0 {
		currentRatio = balance.TotalCurrentAssets / balance.TotalCurrentLiabilities
	}

	netDebtEBITDA := 0.0
	if income.EBITDA > 0 {
		netDebtEBITDA = (balance.TotalDebt - balance.CashAndCashEquivalents) / income.EBITDA
	}

	interestCoverage := domain.UncappedInterestCoverage
	if interestExpense > 0 {
		interestCoverage = income.OperatingIncome / interestExpense
	}

	revenueGrowth := 0.0
	if len(incomes) >= 2 && incomes[1].Revenue > 0 {
		revenueGrowth = (incomes[0].Revenue - incomes[1].Revenue) / incomes[1].Revenue * 100
	}

	revenuePerShare := 0.0
	if sharesOut > 0 {
		revenuePerShare = income.Revenue / sharesOut
	}

	var pegRatio *float64
	if peRatio != nil && revenueGrowth > 0 {
		pegRatio = domain.Float(*peRatio / revenueGrowth)
	}

	industry := p.Industry
	if industry == "" {
		industry = domain.UnknownSector
	}
	sector := p.Sector
	if sector == "" {
		sector = domain.UnknownSector
	}
	currency := p.Currency
	if currency == "" {
		currency = "USD"
	}

	return &domain.FinancialFact{
		Ticker:      symbol,
		Name:        name,
		Industry:    industry,
		Sector:      sector,
		Description: p.Description,
		Currency:    currency,

		CurrentPrice: price,
		MarketCap:    marketCap,

		PERatio:  peRatio,
		PBRatio:  pbRatio,
		PEGRatio: pegRatio,
		EPS:      epsPtr,

		ROE:             roe,
		OperatingMargin: operatingMargin,
		FCFYield:        fcfYield,

		CurrentRatio:     currentRatio,
		DebtToEquity:     debtToEquity,
		NetDebtEBITDA:    netDebtEBITDA,
		InterestCoverage: interestCoverage,

		RevenueGrowth:   revenueGrowth,
		RevenuePerShare: revenuePerShare,

		TotalDebt:      balance.TotalDebt,
		TotalAssets:    totalAssets,
		InterestIncome: income.InterestIncome,
		IlliquidAssets: illiquidAssets,
		CurrentAssets:  balance.TotalCurrentAssets,
		TotalRevenue:   income.Revenue,
	}
}

// momentum returns the 3-month price change in percent. Returns 0 on any
// failure.
func (c *Client) momentum(ctx context.Context, symbol string) float64 {
	history, err := c.fetchHistory(ctx, symbol, 90)
	if err != nil || len(history) < 2 {
		return 0
	}

	// The endpoint returns newest first.
	endPrice := history[0].Close
	startPrice := history[len(history)-1].Close
	if startPrice <= 0 {
		return 0
	}
	return (endPrice - startPrice) / startPrice * 100
}
