package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"zakat-tracker/domain"
	"zakat-tracker/export"
	"zakat-tracker/metrics"
	"zakat-tracker/repository"
)

const defaultRecentTransactions = 10

type DonationService struct {
	repo   repository.TransactionRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewDonationService(repo repository.TransactionRepository, logger *zap.Logger) *DonationService {
	return &DonationService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// RecordPayment adds a zakat payment to the ledger.
func (s *DonationService) RecordPayment(
	ctx context.Context,
	userID string,
	input domain.PaymentInput,
) (domain.Transaction, error) {
	kind := strings.ToLower(strings.TrimSpace(input.Type))
	if kind != domain.ZakatTypeMal && kind != domain.ZakatTypeFitrah {
		return domain.Transaction{}, domain.NewValidationError("type", "type must be mal or fitrah")
	}
	if !input.Amount.IsPositive() {
		return domain.Transaction{}, domain.NewValidationError("amount", "amount must exceed zero")
	}
	if input.Amount.GreaterThan(MaxAmount) {
		return domain.Transaction{}, domain.NewValidationError("amount", "amount exceeds the maximum allowed value")
	}

	tx := domain.Transaction{
		ID:     uuid.NewString(),
		Type:   kind,
		Amount: input.Amount,
		UserID: userID,
		Date:   s.now(),
	}
	if err := s.repo.Add(ctx, tx); err != nil {
		return domain.Transaction{}, fmt.Errorf("record payment: %w", err)
	}

	metrics.AddDonation(kind, input.Amount.InexactFloat64())
	s.logger.Info("zakat payment recorded",
		zap.String("transaction_id", tx.ID),
		zap.String("type", kind),
		zap.String("amount", tx.Amount.String()),
		zap.String("user_id", userID))

	return tx, nil
}

// Transactions lists ledger entries, newest first.
func (s *DonationService) Transactions(
	ctx context.Context,
	filter domain.TransactionFilter,
) ([]domain.Transaction, error) {
	if filter.Type != "" && filter.Type != domain.ZakatTypeMal && filter.Type != domain.ZakatTypeFitrah {
		return nil, domain.NewValidationError("type", "type must be mal or fitrah")
	}
	if filter.Limit < 0 {
		return nil, domain.NewValidationError("limit", "limit must not be negative")
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}
	return s.repo.List(ctx, filter)
}

// Summary aggregates the whole ledger. recent bounds the number of
// transactions included; zero uses the default.
func (s *DonationService) Summary(ctx context.Context, recent int) (domain.DonationSummary, error) {
	if recent <= 0 {
		recent = defaultRecentTransactions
	}
	return s.summarize(ctx, recent)
}

// summarize aggregates the ledger, keeping at most recent transactions.
// Zero keeps all of them.
func (s *DonationService) summarize(ctx context.Context, recent int) (domain.DonationSummary, error) {
	all, err := s.repo.List(ctx, domain.TransactionFilter{})
	if err != nil {
		return domain.DonationSummary{}, fmt.Errorf("list transactions: %w", err)
	}
	regions, err := s.repo.DonorDistribution(ctx)
	if err != nil {
		return domain.DonationSummary{}, fmt.Errorf("donor distribution: %w", err)
	}

	summary := domain.DonationSummary{
		TotalDonations:    decimal.Zero,
		TotalTransactions: len(all),
		ByType: map[string]decimal.Decimal{
			domain.ZakatTypeMal:    decimal.Zero,
			domain.ZakatTypeFitrah: decimal.Zero,
		},
		Distribution: regions,
		LastUpdated:  s.now(),
	}
	for _, tx := range all {
		summary.TotalDonations = summary.TotalDonations.Add(tx.Amount)
		summary.ByType[tx.Type] = summary.ByType[tx.Type].Add(tx.Amount)
	}
	for _, r := range regions {
		summary.TotalDonors += r.Count
	}
	if recent > 0 && len(all) > recent {
		all = all[:recent]
	}
	summary.RecentTransactions = all

	return summary, nil
}

// Export renders the full ledger as a downloadable report.
func (s *DonationService) Export(ctx context.Context, format string) (export.Report, error) {
	summary, err := s.summarize(ctx, 0)
	if err != nil {
		return export.Report{}, err
	}

	switch strings.ToLower(format) {
	case export.FormatXLSX:
		return export.BuildDonationXLSX(summary)
	case export.FormatPDF:
		return export.BuildDonationPDF(summary)
	default:
		return export.Report{}, domain.NewValidationError("format", "format must be xlsx or pdf")
	}
}
