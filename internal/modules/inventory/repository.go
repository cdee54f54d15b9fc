package inventory

import "context"

// Repository stores counted stock levels. Get returns ErrLevelNotFound for an
// item that has never been counted.
type Repository interface {
	Get(ctx context.Context, item string) (*Level, error)
	List(ctx context.Context) ([]*Level, error)
	Set(ctx context.Context, level *Level) error
}
