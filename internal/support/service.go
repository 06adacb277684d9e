package support

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
	pkgerrors "github.com/sapradeep123/do-good-hub-backend/pkg/errors"
	"github.com/sapradeep123/do-good-hub-backend/pkg/logger"
	"github.com/sapradeep123/do-good-hub-backend/pkg/types"
)

// CallerInput identifies who is asking, for listing scope.
type CallerInput struct {
	Role        enums.Role
	ActorUserID uuid.UUID
}

// TicketInput carries a new support request.
type TicketInput struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// PageInput carries editable site copy for one slug.
type PageInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Service covers support tickets, editable page content, and the admin
// audit trail.
type Service interface {
	CreateTicket(ctx context.Context, userID uuid.UUID, input TicketInput) (*models.Ticket, error)
	ListTickets(ctx context.Context, caller CallerInput) ([]models.Ticket, error)
	UpdateTicketStatus(ctx context.Context, id uuid.UUID, status string) (*models.Ticket, error)

	GetPage(ctx context.Context, slug string) (*models.PageContent, error)
	PutPage(ctx context.Context, slug string, adminUserID uuid.UUID, input PageInput) (*models.PageContent, error)

	RecordAudit(ctx context.Context, adminUserID uuid.UUID, action string, detail types.JSONMap)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the support service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("support: repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("support: logger is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) CreateTicket(ctx context.Context, userID uuid.UUID, input TicketInput) (*models.Ticket, error) {
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if subject == "" || message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subject and message are required")
	}

	ticket, err := s.repo.CreateTicket(ctx, &models.Ticket{
		UserID:  userID,
		Subject: subject,
		Message: message,
		Status:  enums.TicketStatusOpen,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create ticket")
	}
	return ticket, nil
}

func (s *service) ListTickets(ctx context.Context, caller CallerInput) ([]models.Ticket, error) {
	if caller.Role == enums.RoleAdmin {
		tickets, err := s.repo.ListTicketsAll(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tickets")
		}
		return tickets, nil
	}
	tickets, err := s.repo.ListTicketsForUser(ctx, caller.ActorUserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tickets")
	}
	return tickets, nil
}

func (s *service) UpdateTicketStatus(ctx context.Context, id uuid.UUID, status string) (*models.Ticket, error) {
	parsed, err := enums.ParseTicketStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	ticket, err := s.repo.FindTicket(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ticket")
	}

	updates := map[string]any{
		"status":     parsed,
		"updated_at": time.Now().UTC(),
	}
	if err := s.repo.UpdateTicket(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update ticket")
	}
	ticket.Status = parsed
	return ticket, nil
}

func (s *service) GetPage(ctx context.Context, slug string) (*models.PageContent, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	page, err := s.repo.FindPageBySlug(ctx, slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "page not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load page")
	}
	return page, nil
}

func (s *service) PutPage(ctx context.Context, slug string, adminUserID uuid.UUID, input PageInput) (*models.PageContent, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" || strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug and title are required")
	}

	page, err := s.repo.UpsertPage(ctx, &models.PageContent{
		Slug:      slug,
		Title:     input.Title,
		Body:      input.Body,
		UpdatedBy: &adminUserID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save page")
	}

	s.RecordAudit(ctx, adminUserID, "page_content.update", types.JSONMap{"slug": slug})
	return page, nil
}

// RecordAudit writes an audit entry. Failures are logged, not surfaced: the
// audited action itself already succeeded.
func (s *service) RecordAudit(ctx context.Context, adminUserID uuid.UUID, action string, detail types.JSONMap) {
	entry := &models.AdminAuditLog{
		AdminUserID: adminUserID,
		Action:      action,
	}
	if detail != nil {
		entry.Detail = &detail
	}
	if err := s.repo.CreateAuditEntry(ctx, entry); err != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"action": action,
			"error":  err.Error(),
		})
		s.logg.Warn(ctx, "audit entry write failed")
	}
}
