package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"

	"TradeSentinel/internal/model"
)

func TestValue(t *testing.T) {
	btcUSD := model.Product{Base: "BTC", Quote: "USD"}
	tests := []struct {
		name     string
		price    string
		accounts []model.Account
		want     string
	}{
		{
			name:  "quote and base",
			price: "50000",
			accounts: []model.Account{
				{Currency: "USD", Balance: decimal.RequireFromString("1000")},
				{Currency: "BTC", Balance: decimal.RequireFromString("0.5")},
			},
			want: "26000",
		},
		{
			name:  "other currencies ignored",
			price: "20000",
			accounts: []model.Account{
				{Currency: "ETH", Balance: decimal.RequireFromString("10")},
				{Currency: "btc", Balance: decimal.RequireFromString("0.1")},
			},
			want: "2000",
		},
		{
			name:  "addends rounded to 8 decimals",
			price: "3",
			accounts: []model.Account{
				{Currency: "BTC", Balance: decimal.RequireFromString("0.123456789")},
			},
			want: "0.37037037",
		},
		{name: "no accounts", price: "1", want: "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := Value(btcUSD, decimal.RequireFromString(tc.price), tc.accounts)
			if !state.TotalValue.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("expected %s, got %s", tc.want, state.TotalValue)
			}
			if len(state.Accounts) != len(tc.accounts) {
				t.Errorf("expected %d accounts, got %d", len(tc.accounts), len(state.Accounts))
			}
		})
	}
}

func TestValue_CopiesAccounts(t *testing.T) {
	accounts := []model.Account{{Currency: "USD", Balance: decimal.NewFromInt(5)}}
	state := Value(model.Product{Base: "BTC", Quote: "USD"}, decimal.NewFromInt(1), accounts)
	accounts[0].Balance = decimal.NewFromInt(99)
	if !state.Accounts[0].Balance.Equal(decimal.NewFromInt(5)) {
		t.Errorf("snapshot shares memory with input: %s", state.Accounts[0].Balance)
	}
}
