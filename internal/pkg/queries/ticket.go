package queries

const (
	ticketColumns = `
			id,
			reference,
			user_id,
			subject,
			description,
			category,
			status,
			priority,
			COALESCE(assigned_to, ''),
			resolved_at,
			closed_at,
			created_at,
			updated_at
	`

	InsertTicket = `
		INSERT INTO tickets (
			id,
			reference,
			user_id,
			subject,
			description,
			category,
			status,
			priority,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`

	GetTicketByID = `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE id = $1
	`

	GetTicketsByUserID = `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	GetAllTickets = `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE ($1 = '' OR status = $1)
		ORDER BY updated_at DESC
	`

	UpdateTicketStatus = `
		UPDATE tickets
		SET
			status = $1,
			resolved_at = COALESCE($2, resolved_at),
			closed_at = COALESCE($3, closed_at),
			updated_at = NOW()
		WHERE id = $4
	`

	AssignTicket = `
		UPDATE tickets
		SET assigned_to = $1, status = $2, updated_at = NOW()
		WHERE id = $3
	`

	TouchTicket = `
		UPDATE tickets
		SET updated_at = NOW()
		WHERE id = $1
	`

	InsertTicketMessage = `
		INSERT INTO ticket_messages (id, ticket_id, sender_id, content, is_staff, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	GetTicketMessagesByTicketID = `
		SELECT id, ticket_id, sender_id, content, is_staff, created_at
		FROM ticket_messages
		WHERE ticket_id = $1
		ORDER BY created_at ASC
	`
)
