package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements DDL idempotente del modo remoto. El trigger de
// account_datasets publica el user_id por pg_notify en cada escritura; es la
// fuente del feed de cambios al que se suscribe el Sync Router.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            text PRIMARY KEY,
		email         text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		store_name    text NOT NULL DEFAULT '',
		role          text NOT NULL DEFAULT 'user',
		created_at    timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS licenses (
		key          text PRIMARY KEY,
		status       text NOT NULL DEFAULT 'available',
		generated_by text NOT NULL DEFAULT '',
		created_at   timestamptz NOT NULL DEFAULT now(),
		used_by      text,
		used_at      timestamptz
	)`,
	`CREATE TABLE IF NOT EXISTS account_datasets (
		user_id    text PRIMARY KEY,
		doc        jsonb NOT NULL,
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS password_resets (
		token      text PRIMARY KEY,
		email      text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE OR REPLACE FUNCTION notify_dataset_changed() RETURNS trigger AS $$
	BEGIN
		PERFORM pg_notify('dataset_changed', NEW.user_id);
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS account_datasets_notify ON account_datasets`,
	`CREATE TRIGGER account_datasets_notify
		AFTER INSERT OR UPDATE ON account_datasets
		FOR EACH ROW EXECUTE FUNCTION notify_dataset_changed()`,
}

// EnsureSchema crea las tablas y el trigger de notificación si no existen.
// Se invoca una vez al arrancar en modo remoto.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("aplicar esquema: %w", err)
		}
	}
	return nil
}
