package repositories

const bindingColumns = `"id", "recipient_id", "account_id", "ledger", "descriptor", "descriptor_fingerprint", "status", "method",
		"is_default", "micro_deposit_amounts", "micro_deposit_attempts", "micro_deposit_expires_at", "verified_at",
		"failure_reason", "reviewer", "created_at", "updated_at"`

var (
	queryBindingCreate = `
		INSERT INTO recipient_account_bindings(` + bindingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`

	queryBindingGetByID = `SELECT ` + bindingColumns + ` FROM recipient_account_bindings WHERE "id" = $1;`

	queryBindingGetByIDForUpdate = `SELECT ` + bindingColumns + ` FROM recipient_account_bindings WHERE "id" = $1 FOR UPDATE;`

	queryBindingListByRecipient = `SELECT ` + bindingColumns + ` FROM recipient_account_bindings
		WHERE "recipient_id" = $1 ORDER BY "created_at" ASC, "id" ASC;`

	queryBindingGetDefault = `SELECT ` + bindingColumns + ` FROM recipient_account_bindings
		WHERE "recipient_id" = $1 AND "is_default" = true;`

	queryBindingCountActive = `SELECT COUNT(1) FROM recipient_account_bindings
		WHERE "recipient_id" = $1 AND "status" <> 'FAILED';`

	queryBindingUpdateVerification = `
		UPDATE recipient_account_bindings SET
			"status" = $2, "method" = $3, "micro_deposit_amounts" = $4, "micro_deposit_attempts" = $5,
			"micro_deposit_expires_at" = $6, "verified_at" = $7, "failure_reason" = $8, "reviewer" = $9,
			"updated_at" = $10
		WHERE "id" = $1 AND "status" = $11;`

	// one statement clears the previous default and sets the new one
	querySwitchDefault = `
		UPDATE recipient_account_bindings SET "is_default" = ("id" = $2), "updated_at" = now()
		WHERE "recipient_id" = $1 AND ("is_default" = true OR "id" = $2);`

	queryBindingExpireMicroDeposits = `
		UPDATE recipient_account_bindings SET "status" = 'FAILED', "failure_reason" = $2, "updated_at" = $1
		WHERE "status" = 'PENDING_VERIFICATION' AND "method" = 'MICRO_DEPOSIT' AND "micro_deposit_expires_at" <= $1;`

	queryBindingVersionEnsure = `
		INSERT INTO recipient_binding_versions("recipient_id", "version") VALUES ($1, 0)
		ON CONFLICT ("recipient_id") DO NOTHING;`

	queryBindingVersionGet = `SELECT "version" FROM recipient_binding_versions WHERE "recipient_id" = $1;`

	queryBindingVersionCAS = `
		UPDATE recipient_binding_versions SET "version" = "version" + 1
		WHERE "recipient_id" = $1 AND "version" = $2;`
)
