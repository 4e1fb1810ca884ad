package postgres

import (
	"context"
	"fmt"
)

// usersSchema replica las restricciones del almacén documental: email y code
// únicos y rol restringido al conjunto fijo.
var usersSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	full_name     TEXT NOT NULL,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	code          TEXT NOT NULL,
	role          TEXT NOT NULL CHECK (role IN ('worker', 'supervisor', 'management', 'admin')),
	supervisor_id UUID NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL,
	CONSTRAINT users_email_key UNIQUE (email),
	CONSTRAINT users_code_key UNIQUE (code)
)`,
	`CREATE INDEX IF NOT EXISTS users_supervisor_idx ON users (supervisor_id) WHERE supervisor_id IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS users_created_at_idx ON users (created_at)`,
}

// EnsureSchema crea la tabla users y sus índices en una sola transacción.
func EnsureSchema(ctx context.Context, tx *TxRunner) error {
	return tx.Run(ctx, func(users *UserRepo) error {
		for _, stmt := range usersSchema {
			if _, err := users.db.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("crear esquema users: %w", err)
			}
		}
		return nil
	})
}
