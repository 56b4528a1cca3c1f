package queries

const (
	paymentColumns = `
			id,
			request_id,
			user_id,
			org_id,
			stripe_payment_intent_id,
			amount,
			currency,
			status,
			description,
			paid_at,
			failed_at,
			refunded_at,
			created_at,
			updated_at
	`

	InsertPayment = `
		INSERT INTO payments (
			id,
			request_id,
			user_id,
			org_id,
			stripe_payment_intent_id,
			amount,
			currency,
			status,
			description,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
	`

	GetPaymentByPaymentIntentID = `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE stripe_payment_intent_id = $1
	`

	GetLatestPaymentByRequestID = `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE request_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	GetPaymentsByOrgID = `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE org_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3
	`

	// The timestamp matching the new status is stamped, the others are left untouched.
	UpdatePaymentStatus = `
		UPDATE payments
		SET
			status = $1,
			paid_at = CASE WHEN $1 = 'succeeded' THEN $2 ELSE paid_at END,
			failed_at = CASE WHEN $1 = 'failed' THEN $2 ELSE failed_at END,
			refunded_at = CASE WHEN $1 = 'refunded' THEN $2 ELSE refunded_at END,
			updated_at = $2
		WHERE stripe_payment_intent_id = $3
	`

	GetPaymentStatsByOrgID = `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE status = 'succeeded'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'succeeded' AND paid_at >= $2), 0),
			COALESCE(SUM(amount) FILTER (WHERE status IN ('pending', 'processing')), 0),
			COUNT(*) FILTER (WHERE status = 'succeeded'),
			COUNT(*) FILTER (WHERE status IN ('pending', 'processing')),
			COUNT(*) FILTER (WHERE status = 'failed')
		FROM payments
		WHERE org_id = $1
	`
)
