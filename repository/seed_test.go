package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zakat-tracker/domain"
)

var seedNow = time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)

func TestDefaultSeed(t *testing.T) {
	seed, err := DefaultSeed(seedNow)
	require.NoError(t, err)

	assert.Len(t, seed.Users, 6)
	assert.Len(t, seed.Transactions, 6)
	assert.Len(t, seed.Distribution, 8)
	assert.Len(t, seed.Templates, 6)
	assert.Len(t, seed.Doas, 7)

	assert.Equal(t, "Bali & Nusa Tenggara", seed.Distribution[7].Region)
	assert.Equal(t, seedNow.Add(-2*time.Hour), seed.Transactions[0].Date)
	assert.Equal(t, []string{"user2", "user4", "user6"}, seed.Users[0].Following)

	doa2 := seed.Doas[1]
	assert.Equal(t, "doa2", doa2.ID)
	assert.Equal(t, domain.VisibilityPublic, doa2.Visibility)
	assert.True(t, doa2.AmeenBy["user1"])
	assert.Equal(t, 42, doa2.AmeenCount)
}

func TestParseSeed_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "users: [unterminated"},
		{"bad amount", "transactions:\n  - {id: \"1\", type: mal, amount: lots}"},
		{"bad age", "doas:\n  - {id: d, user_id: u, text: t, age: yesterday}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeed([]byte(tt.data), seedNow)
			assert.Error(t, err)
		})
	}
}
