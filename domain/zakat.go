package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ZakatTypeMal    = "mal"
	ZakatTypeFitrah = "fitrah"
)

type ZakatMalInput struct {
	TotalAssets decimal.Decimal
	TotalDebts  decimal.Decimal
	// NisabThreshold is optional; zero means the current reference value is used.
	NisabThreshold decimal.Decimal
}

type ZakatMalResult struct {
	NetAssets      decimal.Decimal
	NisabThreshold decimal.Decimal
	IsEligible     bool
	ZakatAmount    decimal.Decimal
}

type ZakatFitrahInput struct {
	FamilyMembers  int
	RicePricePerKg decimal.Decimal
}

type ZakatFitrahResult struct {
	RiceWeightKg decimal.Decimal
	ZakatAmount  decimal.Decimal
}

// NisabReference is the gold price snapshot a zakat mal calculation is judged against.
type NisabReference struct {
	GoldPricePerGram decimal.Decimal
	NisabThreshold   decimal.Decimal
	Source           string
	UpdatedAt        time.Time
}

// CalculationRecord is one entry of a user's calculation history.
// Exactly one of the Mal/Fitrah pairs is set, matching Type.
type CalculationRecord struct {
	ID           string
	UserID       string
	Type         string
	MalInput     *ZakatMalInput
	MalResult    *ZakatMalResult
	FitrahInput  *ZakatFitrahInput
	FitrahResult *ZakatFitrahResult
	CreatedAt    time.Time
}
