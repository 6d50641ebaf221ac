package repositories

const transferStateColumns = `"transfer_id", "intent_id", "attestation_id", "kind", "ledger_id", "ledger_code",
		"debit_account_id", "credit_account_id", "amount", "code", "state", "honoring", "created_at", "updated_at",
		"finalized_at"`

var (
	queryTransferStateCreate = `
		INSERT INTO transfer_states(` + transferStateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT ("transfer_id") DO NOTHING;`

	queryTransferStateGetByID = `SELECT ` + transferStateColumns + ` FROM transfer_states WHERE "transfer_id" = $1;`

	queryTransferStateGetByIntentID = `SELECT ` + transferStateColumns + ` FROM transfer_states WHERE "intent_id" = $1;`

	queryTransferStateUpdate = `
		UPDATE transfer_states SET "state" = $3, "finalized_at" = $4, "updated_at" = $5
		WHERE "transfer_id" = $1 AND "state" = $2;`
)
