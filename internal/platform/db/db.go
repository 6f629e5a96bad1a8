package db

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"staffrecords/internal/platform/config"
)

func Connect(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConns = int32(cfg.DBMaxConns)
	poolCfg.MinConns = min(2, poolCfg.MaxConns)
	if cfg.DBQueryTimeout > 0 {
		// server-side cap so a stuck statement cannot hold a pooled connection forever
		poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(cfg.DBQueryTimeout.Milliseconds(), 10)
	}
	return pgxpool.NewWithConfig(ctx, poolCfg)
}
