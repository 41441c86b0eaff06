package upstream

import (
	"context"
	"net/url"
	"time"

	"github.com/NileMind-Team/pahray-sub001/internal/model"
)

// ListOrders fetches the orders placed inside [start, end]. The date filter
// is applied server-side; the report engine never filters locally.
func (c *Client) ListOrders(ctx context.Context, start, end time.Time) ([]model.OrderRecord, error) {
	query := url.Values{}
	query.Set("startDate", start.Format("2006-01-02"))
	query.Set("endDate", end.Format("2006-01-02"))

	var orders []model.OrderRecord
	if err := c.get(ctx, "/api/orders", query, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderByID fetches one order's full detail. The detail payload can be
// richer than the list payload (items, options, notes).
func (c *Client) OrderByID(ctx context.Context, id string) (*model.OrderRecord, error) {
	var order model.OrderRecord
	if err := c.get(ctx, "/api/orders/"+url.PathEscape(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
