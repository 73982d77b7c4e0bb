package redemption

import (
	"context"
	"errors"
	"io"
	"log"

	"loyalty-exchange/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, rec domain.Redemption) (*domain.Redemption, error) {
	const q = `
INSERT INTO redemptions (
    client_id, name, type, ip, points, value, exchange_rate, address, neighborhood, city, zip_code
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, client_id, name, type, ip, points, value, exchange_rate, address, neighborhood, city, zip_code, created_at
`
	return r.scanRedemption(r.pool.QueryRow(
		ctx,
		q,
		rec.ClientID,
		rec.Name,
		rec.Type,
		rec.IP,
		rec.Points,
		rec.Value,
		rec.ExchangeRate,
		rec.Address,
		rec.Neighborhood,
		rec.City,
		rec.ZipCode,
	))
}

func (r *postgresRepo) ListByClient(ctx context.Context, clientID int64) ([]domain.Redemption, error) {
	const q = `
SELECT id, client_id, name, type, ip, points, value, exchange_rate, address, neighborhood, city, zip_code, created_at
FROM redemptions
WHERE client_id = $1
ORDER BY created_at DESC, id DESC
`
	rows, err := r.pool.Query(ctx, q, clientID)
	if err != nil {
		r.logger.Printf("redemption repo: list client_id=%d err=%v", clientID, err)
		return nil, err
	}
	defer rows.Close()

	var out []domain.Redemption
	for rows.Next() {
		rec, err := r.scanRedemption(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *postgresRepo) scanRedemption(row pgx.Row) (*domain.Redemption, error) {
	var rec domain.Redemption
	err := row.Scan(
		&rec.ID,
		&rec.ClientID,
		&rec.Name,
		&rec.Type,
		&rec.IP,
		&rec.Points,
		&rec.Value,
		&rec.ExchangeRate,
		&rec.Address,
		&rec.Neighborhood,
		&rec.City,
		&rec.ZipCode,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("redemption repo: scan error=%v", err)
		return nil, err
	}
	return &rec, nil
}
