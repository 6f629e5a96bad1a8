package auth

import "context"

type StoreAPI interface {
	FindAccountByEmail(ctx context.Context, email string) (Account, error)
	AccountByID(ctx context.Context, id int64) (Account, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}
