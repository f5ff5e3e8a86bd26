package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"zakat-tracker/domain"
	"zakat-tracker/export"
	"zakat-tracker/repository"
)

var fixedNow = time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)

func newDonationService(t *testing.T) *DonationService {
	t.Helper()
	seed, err := repository.DefaultSeed(fixedNow)
	require.NoError(t, err)
	svc := NewDonationService(
		repository.NewTransactionRepositoryMemory(seed.Transactions, seed.Distribution),
		zap.NewNop(),
	)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestDonationService_Summary_Seeded(t *testing.T) {
	svc := newDonationService(t)

	summary, err := svc.Summary(context.Background(), 3)

	require.NoError(t, err)
	assert.True(t, summary.TotalDonations.Equal(d(9495000)))
	assert.Equal(t, 6, summary.TotalTransactions)
	assert.Equal(t, 1000, summary.TotalDonors)
	assert.True(t, summary.ByType[domain.ZakatTypeMal].Equal(d(9250000)))
	assert.True(t, summary.ByType[domain.ZakatTypeFitrah].Equal(d(245000)))
	assert.Len(t, summary.Distribution, 8)
	require.Len(t, summary.RecentTransactions, 3)
	assert.Equal(t, "1", summary.RecentTransactions[0].ID)
	assert.Equal(t, fixedNow, summary.LastUpdated)
}

func TestDonationService_RecordPayment(t *testing.T) {
	svc := newDonationService(t)
	ctx := context.Background()

	tx, err := svc.RecordPayment(ctx, "user3", domain.PaymentInput{Type: " Fitrah ", Amount: d(45000)})
	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, domain.ZakatTypeFitrah, tx.Type)
	assert.Equal(t, "user3", tx.UserID)

	txs, err := svc.Transactions(ctx, domain.TransactionFilter{Type: domain.ZakatTypeFitrah})
	require.NoError(t, err)
	require.Len(t, txs, 4)
	assert.Equal(t, tx.ID, txs[0].ID)

	summary, err := svc.Summary(ctx, 0)
	require.NoError(t, err)
	assert.True(t, summary.TotalDonations.Equal(d(9540000)))
	assert.Equal(t, 7, summary.TotalTransactions)
}

func TestDonationService_RecordPayment_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input domain.PaymentInput
		field string
	}{
		{"unknown type", domain.PaymentInput{Type: "sadaqah", Amount: d(1000)}, "type"},
		{"zero amount", domain.PaymentInput{Type: "mal", Amount: decimal.Zero}, "amount"},
		{"negative amount", domain.PaymentInput{Type: "mal", Amount: d(-5)}, "amount"},
		{"too large", domain.PaymentInput{Type: "mal", Amount: MaxAmount.Add(d(1))}, "amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newDonationService(t)

			_, err := svc.RecordPayment(context.Background(), "user1", tt.input)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestDonationService_Transactions_Filters(t *testing.T) {
	svc := newDonationService(t)
	ctx := context.Background()

	mal, err := svc.Transactions(ctx, domain.TransactionFilter{Type: domain.ZakatTypeMal, Limit: 2})
	require.NoError(t, err)
	require.Len(t, mal, 2)
	assert.Equal(t, "1", mal[0].ID)
	assert.Equal(t, "3", mal[1].ID)

	_, err = svc.Transactions(ctx, domain.TransactionFilter{Type: "other"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Transactions(ctx, domain.TransactionFilter{Limit: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDonationService_Export(t *testing.T) {
	svc := newDonationService(t)
	ctx := context.Background()

	xlsx, err := svc.Export(ctx, "XLSX")
	require.NoError(t, err)
	assert.Equal(t, export.ContentTypeXLSX, xlsx.ContentType)
	assert.NotEmpty(t, xlsx.Body)

	pdf, err := svc.Export(ctx, export.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, export.ContentTypePDF, pdf.ContentType)
	assert.Equal(t, "%PDF", string(pdf.Body[:4]))

	_, err = svc.Export(ctx, "csv")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDonationService_Export_IncludesWholeLedger(t *testing.T) {
	svc := newDonationService(t)
	ctx := context.Background()

	for i := 0; i < 150; i++ {
		_, err := svc.RecordPayment(ctx, "user1", domain.PaymentInput{Type: domain.ZakatTypeMal, Amount: d(1000)})
		require.NoError(t, err)
	}

	report, err := svc.Export(ctx, export.FormatXLSX)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(report.Body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("transactions")
	require.NoError(t, err)
	assert.Len(t, rows, 156+1) // header plus every transaction

	total, err := f.GetCellValue("summary", "B7")
	require.NoError(t, err)
	assert.Equal(t, "156", total)

	summary, err := svc.Summary(ctx, MaxListLimit)
	require.NoError(t, err)
	assert.Len(t, summary.RecentTransactions, MaxListLimit)
}
