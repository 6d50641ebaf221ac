package repositories

const attestationColumns = `"id", "intent_id", "intent_fingerprint", "idempotency_key", "issued_at", "expires_at", "nonce",
		"policy_checks_passed", "violations", "rule_set_version", "status", "consumed_at"`

var (
	queryAttestationCreate = `
		INSERT INTO attestations(` + attestationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`

	queryAttestationGetByID = `SELECT ` + attestationColumns + ` FROM attestations WHERE "id" = $1;`

	// consumption is a single conditional write; a second caller sees zero rows
	queryAttestationConsume = `
		UPDATE attestations SET "status" = 'CONSUMED', "consumed_at" = $3
		WHERE "id" = $1 AND "intent_fingerprint" = $2 AND "status" = 'ATTESTED' AND "expires_at" > $3;`

	queryAttestationExpireStale = `
		UPDATE attestations SET "status" = 'EXPIRED'
		WHERE "status" = 'ATTESTED' AND "expires_at" <= $1;`
)
