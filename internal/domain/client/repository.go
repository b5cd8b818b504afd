package client

import "context"

type Repository interface {
	Create(ctx context.Context, client *Client) error
	List(ctx context.Context, ownerID string) ([]*Client, error)
	Delete(ctx context.Context, ownerID, id string) error
}
