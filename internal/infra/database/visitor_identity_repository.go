package database

import (
	"context"
	"database/sql"
	"fmt"
)

// VisitorIdentityRepository stitches anonymous visitor ids to resolved
// CRM contacts. The latest contact id wins on conflict; email and
// identified_at keep their first value.
type VisitorIdentityRepository struct {
	DB *sql.DB
}

func NewVisitorIdentityRepository(db *sql.DB) *VisitorIdentityRepository {
	return &VisitorIdentityRepository{DB: db}
}

func (r *VisitorIdentityRepository) Link(ctx context.Context, anonymousID, crmContactID, email string) error {
	query := `
		INSERT INTO visitor_identities (anonymous_id, crm_contact_id, email, identified_at, first_seen_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (anonymous_id)
		DO UPDATE SET
			crm_contact_id = $2,
			email = COALESCE(visitor_identities.email, $3),
			identified_at = COALESCE(visitor_identities.identified_at, NOW())
	`

	if _, err := r.DB.ExecContext(ctx, query, anonymousID, crmContactID, email); err != nil {
		return fmt.Errorf("linking visitor identity: %w", err)
	}
	return nil
}
