package repositories

const intentColumns = `"id", "idempotency_key", "kind", "ledger", "amount", "status", "reason_code", "reason",
		"transfer_id", "attestation_id", "payload", "created_at", "updated_at"`

var (
	// a conflicting idempotency key keeps the first record
	queryIntentCreate = `
		INSERT INTO intent_records(` + intentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT ("idempotency_key") DO NOTHING;`

	queryIntentGetByIdempotencyKey = `SELECT ` + intentColumns + ` FROM intent_records WHERE "idempotency_key" = $1;`

	queryIntentGetByID = `SELECT ` + intentColumns + ` FROM intent_records WHERE "id" = $1;`

	queryIntentUpdateResult = `
		UPDATE intent_records SET "status" = $2, "reason_code" = $3, "reason" = $4, "transfer_id" = $5,
			"attestation_id" = $6, "updated_at" = $7
		WHERE "id" = $1;`
)
