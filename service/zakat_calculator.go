package service

import (
	"github.com/shopspring/decimal"

	"zakat-tracker/domain"
)

// NisabFromGoldPrice returns the nisab threshold for a gold price per gram.
func NisabFromGoldPrice(goldPricePerGram decimal.Decimal) decimal.Decimal {
	return goldPricePerGram.Mul(NisabGoldGrams)
}

// CalculateZakatMal computes asset zakat. It performs no validation: net
// assets may be negative, in which case the result is simply not eligible.
// Eligibility is inclusive of the threshold.
func CalculateZakatMal(totalAssets, totalDebts, nisabThreshold decimal.Decimal) domain.ZakatMalResult {
	net := totalAssets.Sub(totalDebts)
	result := domain.ZakatMalResult{
		NetAssets:      net,
		NisabThreshold: nisabThreshold,
		IsEligible:     net.GreaterThanOrEqual(nisabThreshold),
		ZakatAmount:    decimal.Zero,
	}
	if result.IsEligible {
		result.ZakatAmount = net.Mul(ZakatMalRate)
	}
	return result
}

// CalculateZakatFitrah computes the per-person staple food zakat and its
// cash equivalent. Values are not rounded.
func CalculateZakatFitrah(familyMembers int, ricePricePerKg decimal.Decimal) (domain.ZakatFitrahResult, error) {
	if familyMembers <= 0 {
		return domain.ZakatFitrahResult{}, domain.NewValidationError("family_members", "family member count must exceed zero")
	}
	if !ricePricePerKg.IsPositive() {
		return domain.ZakatFitrahResult{}, domain.NewValidationError("rice_price_per_kg", "rice price must exceed zero")
	}

	weight := decimal.NewFromInt(int64(familyMembers)).Mul(FitrahRicePerPersonKg)
	return domain.ZakatFitrahResult{
		RiceWeightKg: weight,
		ZakatAmount:  weight.Mul(ricePricePerKg),
	}, nil
}
