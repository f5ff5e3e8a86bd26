package repository

import (
	"context"
	"sort"
	"sync"

	"zakat-tracker/domain"
)

// TransactionRepositoryMemory keeps the donation ledger sorted newest first.
type TransactionRepositoryMemory struct {
	mu           sync.RWMutex
	transactions []domain.Transaction
	regions      []domain.DonorRegion
}

func NewTransactionRepositoryMemory(
	transactions []domain.Transaction,
	regions []domain.DonorRegion,
) *TransactionRepositoryMemory {
	txs := make([]domain.Transaction, len(transactions))
	copy(txs, transactions)
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})

	regs := make([]domain.DonorRegion, len(regions))
	copy(regs, regions)

	return &TransactionRepositoryMemory{
		transactions: txs,
		regions:      regs,
	}
}

// Add prepends the transaction so the newest payment is listed first.
func (r *TransactionRepositoryMemory) Add(_ context.Context, tx domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = append([]domain.Transaction{tx}, r.transactions...)
	return nil
}

func (r *TransactionRepositoryMemory) List(
	_ context.Context,
	filter domain.TransactionFilter,
) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Transaction{}
	for _, tx := range r.transactions {
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		out = append(out, tx)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *TransactionRepositoryMemory) DonorDistribution(_ context.Context) ([]domain.DonorRegion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.DonorRegion, len(r.regions))
	copy(out, r.regions)
	return out, nil
}
