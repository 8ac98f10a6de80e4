package domain

// UncappedInterestCoverage is the sentinel for "no debt / uncapped coverage".
// Kept numeric for compatibility with the data sources that report it this way.
const UncappedInterestCoverage = 100.0

// UnknownSector is the placeholder for sector and industry fields the data
// source did not report. Facts carrying it are candidates for a profile
// backfill from a secondary source.
const UnknownSector = "Unknown"

// FinancialFact is a normalized snapshot of one company's fundamentals at a
// point in time. Pointer fields are optional: nil means "not reported".
// Derived ratios are computed on demand and never stored.
type FinancialFact struct {
	// Identity
	Ticker      string `json:"ticker"`
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	Sector      string `json:"sector"`
	Description string `json:"description"`
	Currency    string `json:"currency"`

	// Market
	CurrentPrice float64 `json:"current_price"`
	MarketCap    float64 `json:"market_cap"`

	// Valuation
	PERatio  *float64 `json:"pe_ratio,omitempty"`
	PBRatio  *float64 `json:"pb_ratio,omitempty"`
	PEGRatio *float64 `json:"peg_ratio,omitempty"`
	EPS      *float64 `json:"eps,omitempty"`

	// Profitability (%)
	ROE             float64 `json:"roe"`
	OperatingMargin float64 `json:"operating_margin"`
	FCFYield        float64 `json:"fcf_yield"`

	// Solvency
	CurrentRatio     float64 `json:"current_ratio"`
	DebtToEquity     float64 `json:"debt_to_equity"`
	NetDebtEBITDA    float64 `json:"net_debt_ebitda"`
	InterestCoverage float64 `json:"interest_coverage"`

	// Growth
	RevenueGrowth   float64 `json:"revenue_growth"`
	RevenuePerShare float64 `json:"revenue_per_share"`
	Momentum3M      float64 `json:"momentum_3m"`

	// Shariah inputs
	TotalDebt      float64 `json:"total_debt"`
	TotalAssets    float64 `json:"total_assets"`
	InterestIncome float64 `json:"interest_income"`
	IlliquidAssets float64 `json:"illiquid_assets"`
	CurrentAssets  float64 `json:"current_assets"`
	TotalRevenue   float64 `json:"total_revenue"`
}

// Normalize clamps denominators to a floor of 1 so that ratio math never
// divides by zero. Data providers call this after populating a fact.
func (f *FinancialFact) Normalize() {
	if f.MarketCap <= 0 {
		f.MarketCap = 1
	}
	if f.TotalAssets <= 0 {
		f.TotalAssets = 1
	}
	if f.CurrentPrice < 0 {
		f.CurrentPrice = 0
	}
}

// DebtRatio returns total debt over total assets as a percentage.
func (f *FinancialFact) DebtRatio() float64 {
	if f.TotalAssets <= 0 {
		return 0.0
	}
	return f.TotalDebt / f.TotalAssets * 100
}

// InterestIncomeRatio returns interest income over total revenue as a
// percentage. Zero when the company reports no revenue.
func (f *FinancialFact) InterestIncomeRatio() float64 {
	if f.TotalRevenue <= 0 {
		return 0.0
	}
	return f.InterestIncome / f.TotalRevenue * 100
}

// IlliquidAssetsRatio returns illiquid (real) assets over total assets as a
// percentage.
func (f *FinancialFact) IlliquidAssetsRatio() float64 {
	if f.TotalAssets <= 0 {
		return 0.0
	}
	return f.IlliquidAssets / f.TotalAssets * 100
}

// IsLiquidOK reports whether current assets stay below market capitalization.
func (f *FinancialFact) IsLiquidOK() bool {
	return f.CurrentAssets < f.MarketCap
}

// Float returns a pointer to v. Helper for the optional valuation fields.
func Float(v float64) *float64 {
	return &v
}
