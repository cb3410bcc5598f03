package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"sapacademy/internal/erp"
)

// Сколько строк кладём одним insert'ом. Ограничение Postgres — 65535
// параметров на statement; при самых широких таблицах (10 колонок) запас
// многократный.
const insertChunk = 200

// Replace — контракт replace-write: drop + create + bulk insert в одной
// транзакции. Повторный прогон полностью заменяет содержимое таблицы,
// читатель видит либо старое поколение, либо новое целиком.
func Replace(ctx context.Context, db *sql.DB, t erp.Table, rows [][]any) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace %s: begin: %w", t.Name, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, dropSQL(t)); err != nil {
		return fmt.Errorf("replace %s: drop: %w", t.Name, err)
	}
	if _, err := tx.ExecContext(ctx, createSQL(t)); err != nil {
		return fmt.Errorf("replace %s: create: %w", t.Name, err)
	}

	for off := 0; off < len(rows); off += insertChunk {
		end := off + insertChunk
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[off:end]
		args := make([]any, 0, len(chunk)*len(t.Columns))
		for _, r := range chunk {
			if len(r) != len(t.Columns) {
				return fmt.Errorf("replace %s: row has %d values, want %d", t.Name, len(r), len(t.Columns))
			}
			args = append(args, r...)
		}
		if _, err := tx.ExecContext(ctx, insertSQL(t, len(chunk)), args...); err != nil {
			return fmt.Errorf("replace %s: insert rows %d..%d: %w", t.Name, off, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace %s: commit: %w", t.Name, err)
	}
	return nil
}

// EnsureTable выполняет idempotent DDL (create ... if not exists) для
// append-only таблиц вроде журнала аудита. duplicate_object (42710)
// не считаем ошибкой.
func EnsureTable(ctx context.Context, db *sql.DB, ddl string) error {
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "42710" {
			return nil
		}
		if strings.Contains(strings.ToLower(err.Error()), "already exists") {
			return nil
		}
		return fmt.Errorf("ensure table: %w", err)
	}
	return nil
}

// IsUndefinedTable — чтение упёрлось в отсутствующую таблицу (42P01).
// Так проявляется запуск FI/SD до MM.
func IsUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}
