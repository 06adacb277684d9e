package support

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
)

// Repository exposes ticket, page content, and audit log persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateTicket(ctx context.Context, ticket *models.Ticket) (*models.Ticket, error)
	FindTicket(ctx context.Context, id uuid.UUID) (*models.Ticket, error)
	ListTicketsForUser(ctx context.Context, userID uuid.UUID) ([]models.Ticket, error)
	ListTicketsAll(ctx context.Context) ([]models.Ticket, error)
	UpdateTicket(ctx context.Context, id uuid.UUID, updates map[string]any) error

	FindPageBySlug(ctx context.Context, slug string) (*models.PageContent, error)
	UpsertPage(ctx context.Context, page *models.PageContent) (*models.PageContent, error)

	CreateAuditEntry(ctx context.Context, entry *models.AdminAuditLog) error
}
