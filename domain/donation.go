package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single zakat payment in the donation ledger.
type Transaction struct {
	ID     string
	Type   string // "mal" or "fitrah"
	Amount decimal.Decimal
	UserID string
	Date   time.Time
}

type PaymentInput struct {
	Type   string
	Amount decimal.Decimal
}

type TransactionFilter struct {
	Type  string // empty for all types
	Limit int    // zero for no limit
}

type DonorRegion struct {
	Region string
	Count  int
}

type DonationSummary struct {
	TotalDonations     decimal.Decimal
	TotalTransactions  int
	TotalDonors        int
	ByType             map[string]decimal.Decimal
	Distribution       []DonorRegion
	RecentTransactions []Transaction
	LastUpdated        time.Time
}
