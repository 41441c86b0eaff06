package upstream

import (
	"context"

	"github.com/NileMind-Team/pahray-sub001/internal/model"
)

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.get(ctx, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
