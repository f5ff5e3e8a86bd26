package service

import "github.com/shopspring/decimal"

var (
	// ZakatMalRate is the share of net assets due once nisab is reached (2.5%).
	ZakatMalRate = decimal.RequireFromString("0.025")
	// FitrahRicePerPersonKg is the staple food owed per family member.
	FitrahRicePerPersonKg = decimal.RequireFromString("2.5")
	// NisabGoldGrams is the nisab expressed in grams of gold.
	NisabGoldGrams = decimal.NewFromInt(85)

	MaxAmount = decimal.New(1, 15) // 1 quadrillion
)

const (
	MaxFamilyMembers  = 1000
	MaxDoaLength      = 1000 // runes
	MaxReportReason   = 500  // runes
	DefaultHistoryLen = 20
	MaxListLimit      = 100
)
