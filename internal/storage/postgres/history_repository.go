package postgres

import (
	"context"
	"fmt"

	"remit-transfer/internal/custom_err"
	"remit-transfer/internal/models"
	"remit-transfer/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type HistoryRepository interface {
	Record(ctx context.Context, entry models.LedgerEntry) error
	GetByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*models.LedgerEntry, error)
}

// PgxQuerier покрывает pgxpool.Pool и pgxmock в тестах
type PgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PgHistoryRepository struct {
	db PgxQuerier
}

func NewHistoryRepository(db PgxQuerier) HistoryRepository {
	return &PgHistoryRepository{db: db}
}

// Record добавляет одну строку истории. Повторов внутри нет: запись без
// идемпотентного ключа, повторный вызов с теми же аргументами создаст
// вторую строку, это ответственность вызывающего.
func (r *PgHistoryRepository) Record(ctx context.Context, entry models.LedgerEntry) error {
	const op = "storage.Record"

	err := r.db.QueryRow(ctx, storage.CreateLedgerEntryQuery,
		entry.AccountID,
		entry.CounterpartAccount,
		entry.CounterpartName,
		entry.Direction,
		entry.Amount,
		entry.Currency,
		entry.Method,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, custom_err.ErrLedgerWrite, err)
	}

	return nil
}

func (r *PgHistoryRepository) GetByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*models.LedgerEntry, error) {
	const op = "storage.GetByAccount"

	rows, err := r.db.Query(ctx, storage.GetLedgerEntriesByAccountQuery, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		var entry models.LedgerEntry
		err := rows.Scan(
			&entry.ID,
			&entry.AccountID,
			&entry.CounterpartAccount,
			&entry.CounterpartName,
			&entry.Direction,
			&entry.Amount,
			&entry.Currency,
			&entry.Method,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan error: %w", op, err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}
