package redemption

import (
	"context"

	"loyalty-exchange/internal/domain"
)

// Repository persists and fetches redemption records.
type Repository interface {
	Create(ctx context.Context, r domain.Redemption) (*domain.Redemption, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.Redemption, error)
}
