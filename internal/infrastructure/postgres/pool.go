package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/clinica-api/pkg/config"
)

// NewPool abre el pool de la clínica y verifica la conexión con un ping.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := buildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// buildPoolConfig traduce DBConfig a la configuración de pgxpool sin abrir conexiones.
func buildPoolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	// DB_FORCE_IPV4: para redes sin salida IPv6 donde el host resuelve también a AAAA.
	if cfg.ForceIPv4 {
		dialer := &net.Dialer{Timeout: orDefaultDuration(cfg.ConnectTimeout, 10*time.Second)}
		poolConfig.ConnConfig.DialFunc = func(ctx context.Context, _, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, "tcp4", addr)
		}
	}
	if cfg.ConnectTimeout > 0 {
		poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	poolConfig.MaxConns = int32(orDefault(cfg.MaxConns, 25))
	poolConfig.MinConns = int32(orDefault(cfg.MinConns, 2))
	poolConfig.MaxConnLifetime = orDefaultDuration(cfg.MaxConnLifetime, time.Hour)
	poolConfig.MaxConnIdleTime = orDefaultDuration(cfg.MaxConnIdleTime, 30*time.Minute)
	poolConfig.HealthCheckPeriod = time.Minute

	// NUMERIC -> shopspring/decimal en todas las conexiones del pool.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return poolConfig, nil
}

func orDefault(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

func orDefaultDuration(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
