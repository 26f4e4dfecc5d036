package app

import (
	"github.com/abbie-leigh/hr-portal/internal/department"
	"github.com/abbie-leigh/hr-portal/internal/leave"
	"github.com/abbie-leigh/hr-portal/internal/role"
	"github.com/abbie-leigh/hr-portal/internal/user"

	"gorm.io/gorm"
)

// The outbox table is written with raw SQL (see the outbox repository), so
// its schema is declared here rather than through a gorm model.
const outboxSchema = `
CREATE TABLE IF NOT EXISTS outbox_events (
    id uuid PRIMARY KEY,
    request_id uuid,
    aggregate_type text NOT NULL,
    aggregate_id uuid NOT NULL,
    event_type text NOT NULL,
    topic text NOT NULL,
    payload jsonb NOT NULL,
    status text NOT NULL DEFAULT 'pending',
    retry_count int NOT NULL DEFAULT 0,
    last_error text,
    next_retry_at timestamptz,
    sent_at timestamptz,
    created_at timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_pending
    ON outbox_events (created_at) WHERE status = 'pending';
`

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&leave.Request{},
		&department.Department{},
		&role.Role{},
	); err != nil {
		return err
	}

	return db.Exec(outboxSchema).Error
}
