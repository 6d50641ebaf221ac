package repositories

const honoringOutcomeColumns = `"transfer_id", "intent_id", "rail", "idempotency_key", "status", "attempts", "amount",
		"ledger", "adapter_reference", "last_error", "spec", "created_at", "updated_at"`

var (
	// terminal outcomes are never overwritten
	queryHonoringOutcomeUpsert = `
		INSERT INTO honoring_outcomes(` + honoringOutcomeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT ("transfer_id", "rail") DO UPDATE SET
			"status" = EXCLUDED."status",
			"attempts" = EXCLUDED."attempts",
			"adapter_reference" = EXCLUDED."adapter_reference",
			"last_error" = EXCLUDED."last_error",
			"updated_at" = EXCLUDED."updated_at"
		WHERE honoring_outcomes."status" = 'RETRYING';`

	queryHonoringOutcomeGet = `SELECT ` + honoringOutcomeColumns + ` FROM honoring_outcomes
		WHERE "transfer_id" = $1 AND "rail" = $2;`

	queryHonoringOutcomeListByTransfer = `SELECT ` + honoringOutcomeColumns + ` FROM honoring_outcomes
		WHERE "transfer_id" = $1 ORDER BY "created_at" ASC, "rail" ASC;`

	queryHonoringOutcomeListRetrying = `SELECT ` + honoringOutcomeColumns + ` FROM honoring_outcomes
		WHERE "status" = 'RETRYING' ORDER BY "updated_at" ASC LIMIT $1;`
)
