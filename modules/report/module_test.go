package report

import (
	"context"
	"sync"
	"testing"

	"github.com/example/retail-pos/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule_debtors(t *testing.T) {
	db := storetest.Open(t)
	m := NewModule(db)
	ctx := context.Background()

	empty, err := m.debtors(ctx, DebtorsRequest{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty.Debtors)
	assert.True(t, empty.Total.IsZero())

	seedLedger(t, db)
	resp, err := m.debtors(ctx, DebtorsRequest{}, nil)
	require.NoError(t, err)
	assert.Len(t, resp.Debtors, 2)
	assert.Equal(t, "18.00", resp.Total.StringFixed(2))
}

func TestModule_dashboard(t *testing.T) {
	db := storetest.Open(t)
	m := NewModule(db)
	seedLedger(t, db)

	resp, err := m.dashboard(context.Background(), DashboardRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "28.00", resp.TotalSold.StringFixed(2))
	assert.Equal(t, "report", m.Name())
}

func TestModule_dashboardConcurrent(t *testing.T) {
	db := storetest.Open(t)
	m := NewModule(db)
	seedLedger(t, db)

	const callers = 8
	results := make([]DashboardResponse, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = m.dashboard(context.Background(), DashboardRequest{}, nil)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "28.00", results[i].TotalSold.StringFixed(2))
		assert.Equal(t, int64(4), results[i].TotalItems)
	}
}

func TestModule_dashboardIgnoresCallerCancellation(t *testing.T) {
	db := storetest.Open(t)
	m := NewModule(db)
	seedLedger(t, db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := m.dashboard(ctx, DashboardRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "28.00", resp.TotalSold.StringFixed(2))
}
