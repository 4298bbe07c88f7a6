package sales

import (
	"context"
	"fmt"
)

// Checkout submits the cart through port and clears it once the sale is
// confirmed. On any failure the cart is left untouched so the caller can
// retry.
func Checkout(ctx context.Context, port SalesPort, customerID uint, cart *Cart, credit bool) (*Receipt, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if customerID == 0 {
		return nil, ErrCustomerRequired
	}

	resp, err := port.CommitSale(ctx, &CommitSaleRequest{
		CustomerID: customerID,
		Items:      cart.Entries(),
		Credit:     credit,
	})
	if err != nil {
		return nil, err
	}
	if !resp.Committed || resp.Receipt == nil {
		return nil, fmt.Errorf("%w: %s", ErrCommitFailed, resp.Error)
	}

	cart.Clear()
	return resp.Receipt, nil
}
