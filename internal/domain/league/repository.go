package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, l League) error
	List(ctx context.Context) ([]League, error)
	GetByCode(ctx context.Context, code string) (League, bool, error)
}
