package http

import (
	"time"

	"github.com/shopspring/decimal"

	"zakat-tracker/domain"
	"zakat-tracker/format"
)

type zakatMalRequest struct {
	TotalAssets    format.Amount `json:"total_assets"`
	TotalDebts     format.Amount `json:"total_debts"`
	NisabThreshold format.Amount `json:"nisab_threshold"`
}

type zakatFitrahRequest struct {
	FamilyMembers  int           `json:"family_members"`
	RicePricePerKg format.Amount `json:"rice_price_per_kg"`
}

type zakatMalResponse struct {
	NetAssets               decimal.Decimal `json:"net_assets"`
	NetAssetsFormatted      string          `json:"net_assets_formatted"`
	NisabThreshold          decimal.Decimal `json:"nisab_threshold"`
	NisabThresholdFormatted string          `json:"nisab_threshold_formatted"`
	IsEligible              bool            `json:"is_eligible"`
	ZakatAmount             decimal.Decimal `json:"zakat_amount"`
	ZakatAmountFormatted    string          `json:"zakat_amount_formatted"`
}

func toZakatMalResponse(r domain.ZakatMalResult) zakatMalResponse {
	return zakatMalResponse{
		NetAssets:               r.NetAssets,
		NetAssetsFormatted:      format.Rupiah(r.NetAssets),
		NisabThreshold:          r.NisabThreshold,
		NisabThresholdFormatted: format.Rupiah(r.NisabThreshold),
		IsEligible:              r.IsEligible,
		ZakatAmount:             r.ZakatAmount,
		ZakatAmountFormatted:    format.Rupiah(r.ZakatAmount),
	}
}

type zakatFitrahResponse struct {
	RiceWeightKg         decimal.Decimal `json:"rice_weight_kg"`
	RiceWeightFormatted  string          `json:"rice_weight_formatted"`
	ZakatAmount          decimal.Decimal `json:"zakat_amount"`
	ZakatAmountFormatted string          `json:"zakat_amount_formatted"`
}

func toZakatFitrahResponse(r domain.ZakatFitrahResult) zakatFitrahResponse {
	return zakatFitrahResponse{
		RiceWeightKg:         r.RiceWeightKg,
		RiceWeightFormatted:  format.Kilograms(r.RiceWeightKg),
		ZakatAmount:          r.ZakatAmount,
		ZakatAmountFormatted: format.Rupiah(r.ZakatAmount),
	}
}

type nisabResponse struct {
	GoldPricePerGram        decimal.Decimal `json:"gold_price_per_gram"`
	NisabThreshold          decimal.Decimal `json:"nisab_threshold"`
	NisabThresholdFormatted string          `json:"nisab_threshold_formatted"`
	Source                  string          `json:"source"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

func toNisabResponse(ref domain.NisabReference) nisabResponse {
	return nisabResponse{
		GoldPricePerGram:        ref.GoldPricePerGram,
		NisabThreshold:          ref.NisabThreshold,
		NisabThresholdFormatted: format.Rupiah(ref.NisabThreshold),
		Source:                  ref.Source,
		UpdatedAt:               ref.UpdatedAt,
	}
}

type historyEntry struct {
	ID        string               `json:"id"`
	Type      string               `json:"type"`
	Mal       *zakatMalResponse    `json:"mal,omitempty"`
	Fitrah    *zakatFitrahResponse `json:"fitrah,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

func toHistory(records []domain.CalculationRecord) []historyEntry {
	out := make([]historyEntry, 0, len(records))
	for _, rec := range records {
		e := historyEntry{ID: rec.ID, Type: rec.Type, CreatedAt: rec.CreatedAt}
		if rec.MalResult != nil {
			m := toZakatMalResponse(*rec.MalResult)
			e.Mal = &m
		}
		if rec.FitrahResult != nil {
			f := toZakatFitrahResponse(*rec.FitrahResult)
			e.Fitrah = &f
		}
		out = append(out, e)
	}
	return out
}

type paymentRequest struct {
	Type   string        `json:"type"`
	Amount format.Amount `json:"amount"`
}

type transactionResponse struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	AmountFormatted string          `json:"amount_formatted"`
	UserID          string          `json:"user_id"`
	Date            time.Time       `json:"date"`
}

func toTransactionResponse(tx domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:              tx.ID,
		Type:            tx.Type,
		Amount:          tx.Amount,
		AmountFormatted: format.Rupiah(tx.Amount),
		UserID:          tx.UserID,
		Date:            tx.Date,
	}
}

func toTransactions(txs []domain.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return out
}

type regionResponse struct {
	Region string `json:"region"`
	Count  int    `json:"count"`
}

type summaryResponse struct {
	TotalDonations          decimal.Decimal            `json:"total_donations"`
	TotalDonationsFormatted string                     `json:"total_donations_formatted"`
	TotalTransactions       int                        `json:"total_transactions"`
	TotalDonors             int                        `json:"total_donors"`
	ByType                  map[string]decimal.Decimal `json:"by_type"`
	DonorDistribution       []regionResponse           `json:"donor_distribution"`
	RecentTransactions      []transactionResponse      `json:"recent_transactions"`
	LastUpdated             time.Time                  `json:"last_updated"`
}

func toSummaryResponse(s domain.DonationSummary) summaryResponse {
	regions := make([]regionResponse, 0, len(s.Distribution))
	for _, r := range s.Distribution {
		regions = append(regions, regionResponse{Region: r.Region, Count: r.Count})
	}
	return summaryResponse{
		TotalDonations:          s.TotalDonations,
		TotalDonationsFormatted: format.Rupiah(s.TotalDonations),
		TotalTransactions:       s.TotalTransactions,
		TotalDonors:             s.TotalDonors,
		ByType:                  s.ByType,
		DonorDistribution:       regions,
		RecentTransactions:      toTransactions(s.RecentTransactions),
		LastUpdated:             s.LastUpdated,
	}
}

type doaRequest struct {
	Text       string `json:"text"`
	Visibility string `json:"visibility"`
	TemplateID string `json:"template_id"`
}

func (d doaRequest) toInput() domain.DoaInput {
	return domain.DoaInput{Text: d.Text, Visibility: d.Visibility, TemplateID: d.TemplateID}
}

type reportRequest struct {
	Reason string `json:"reason"`
}

type userResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
}

type doaResponse struct {
	ID                 string       `json:"id"`
	Text               string       `json:"text"`
	Visibility         string       `json:"visibility"`
	TemplateID         string       `json:"template_id,omitempty"`
	TemplateBackground string       `json:"template_background,omitempty"`
	AmeenCount         int          `json:"ameen_count"`
	IsAmeen            bool         `json:"is_ameen"`
	Author             userResponse `json:"author"`
	PostedAgo          string       `json:"posted_ago"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

func toDoaResponse(v domain.DoaView) doaResponse {
	return doaResponse{
		ID:                 v.ID,
		Text:               v.Text,
		Visibility:         v.Visibility,
		TemplateID:         v.TemplateID,
		TemplateBackground: v.TemplateBackground,
		AmeenCount:         v.AmeenCount,
		IsAmeen:            v.IsAmeen,
		Author:             userResponse{ID: v.Author.ID, Name: v.Author.Name, PhotoURL: v.Author.PhotoURL},
		PostedAgo:          v.PostedAgo,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func toDoas(views []domain.DoaView) []doaResponse {
	out := make([]doaResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toDoaResponse(v))
	}
	return out
}

type myDoasResponse struct {
	Regular   []doaResponse `json:"regular"`
	Templates []doaResponse `json:"templates"`
}

type templateResponse struct {
	ID         string `json:"id"`
	Background string `json:"background"`
}

type shareResponse struct {
	DoaID string `json:"doa_id"`
	Text  string `json:"text"`
}

type reportResponse struct {
	ID        string    `json:"id"`
	DoaID     string    `json:"doa_id"`
	CreatedAt time.Time `json:"created_at"`
}
