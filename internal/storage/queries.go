package storage

const (
	// Добавить строку истории переводов (append-only)
	CreateLedgerEntryQuery = `
		INSERT INTO transfer_history (
			account_id, counterpart_account, counterpart_name, direction, amount, currency, method
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	// История переводов по счету, новые записи первыми
	GetLedgerEntriesByAccountQuery = `
		SELECT id, account_id, counterpart_account, counterpart_name, direction, amount, currency, method, created_at
		FROM transfer_history
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
)
