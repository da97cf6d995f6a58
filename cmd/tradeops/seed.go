package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/tradeops/internal/store"
)

type demoClient struct {
	name string
	cash string
}

// demoClients are loaded into the memory store so uploads have accounts to
// settle against. They get ids 1..n in this order.
var demoClients = []demoClient{
	{"John Smith", "100000.00"},
	{"Jane Doe", "50000.00"},
	{"Acme Capital", "250000.00"},
	{"Bob Wilson", "1000.00"},
}

func seedClients(ctx context.Context, st store.Store) error {
	for _, c := range demoClients {
		if _, err := st.CreateClient(ctx, c.name, decimal.RequireFromString(c.cash)); err != nil {
			return fmt.Errorf("seed client %s: %w", c.name, err)
		}
	}
	return nil
}
