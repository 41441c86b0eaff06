package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/NileMind-Team/pahray-sub001/internal/model"
)

// Management entities live in the backend; this service only validates and
// passes admin edits through.

func (c *Client) ListBranches(ctx context.Context) ([]model.Branch, error) {
	var branches []model.Branch
	if err := c.get(ctx, "/api/branches", nil, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

// SaveBranch creates when the id is empty and updates otherwise.
func (c *Client) SaveBranch(ctx context.Context, branch model.Branch) (*model.Branch, error) {
	method, path := http.MethodPost, "/api/branches"
	if branch.ID != "" {
		method, path = http.MethodPut, "/api/branches/"+url.PathEscape(branch.ID)
	}

	var saved model.Branch
	if err := c.send(ctx, method, path, nil, branch, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) DeleteBranch(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/branches/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ListDeliveryAreas(ctx context.Context) ([]model.DeliveryArea, error) {
	var areas []model.DeliveryArea
	if err := c.get(ctx, "/api/delivery-areas", nil, &areas); err != nil {
		return nil, err
	}
	return areas, nil
}

func (c *Client) SaveDeliveryArea(ctx context.Context, area model.DeliveryArea) (*model.DeliveryArea, error) {
	method, path := http.MethodPost, "/api/delivery-areas"
	if area.ID != "" {
		method, path = http.MethodPut, "/api/delivery-areas/"+url.PathEscape(area.ID)
	}

	var saved model.DeliveryArea
	if err := c.send(ctx, method, path, nil, area, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) DeleteDeliveryArea(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/delivery-areas/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ListShifts(ctx context.Context) ([]model.Shift, error) {
	var shifts []model.Shift
	if err := c.get(ctx, "/api/shifts", nil, &shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}

func (c *Client) SaveShift(ctx context.Context, shift model.Shift) (*model.Shift, error) {
	method, path := http.MethodPost, "/api/shifts"
	if shift.ID != "" {
		method, path = http.MethodPut, "/api/shifts/"+url.PathEscape(shift.ID)
	}

	var saved model.Shift
	if err := c.send(ctx, method, path, nil, shift, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) DeleteShift(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/shifts/"+url.PathEscape(id), nil, nil, nil)
}
