package port

import "context"

type UserDirectory interface {
	Register(ctx context.Context, customerID, name, email string) error
	Exists(ctx context.Context, customerID string) (bool, error)
}
