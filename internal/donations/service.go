package donations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
	pkgerrors "github.com/sapradeep123/do-good-hub-backend/pkg/errors"
)

// SignatureVerifier checks a gateway callback signature. The production
// implementation lives in pkg/security.
type SignatureVerifier interface {
	Verify(orderRef, paymentRef, signature string) bool
}

// CreateOrderInput carries the donor's request for a new payment order.
type CreateOrderInput struct {
	ActorUserID uuid.UUID
	PackageID   uuid.UUID
	NGOID       uuid.UUID
	Quantity    int
}

// CreateOrderResult echoes the package and NGO so the client can render the
// payment sheet without a second round trip.
type CreateOrderResult struct {
	Order   *models.Order   `json:"order"`
	Package *models.Package `json:"package"`
	NGO     *models.NGO     `json:"ngo"`
}

// VerifyPaymentInput carries the gateway callback fields for confirmation.
type VerifyPaymentInput struct {
	ActorUserID uuid.UUID
	OrderRef    string
	PaymentRef  string
	Signature   string
}

// VerifyPaymentResult reports the records written for a confirmed payment.
type VerifyPaymentResult struct {
	OrderRef      string    `json:"order_ref"`
	PaymentRef    string    `json:"payment_ref"`
	DonationID    uuid.UUID `json:"donation_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
}

// StatisticsResult bundles aggregate counts with the most recent orders.
type StatisticsResult struct {
	Statistics   OrderStatistics `json:"statistics"`
	RecentOrders []OrderEntry    `json:"recent_orders"`
}

// Service drives the donation payment flow from order creation through
// verified payment and the fulfillment records it spawns.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error)
	VerifyPayment(ctx context.Context, input VerifyPaymentInput) (*VerifyPaymentResult, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]DonationEntry, error)
	ListAll(ctx context.Context) ([]DonationEntry, error)
	History(ctx context.Context, userID uuid.UUID) ([]OrderEntry, error)
	Orders(ctx context.Context) ([]OrderEntry, error)
	Statistics(ctx context.Context) (*StatisticsResult, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo     Repository
	tx       txRunner
	verifier SignatureVerifier
}

const recentOrdersLimit = 10

// NewService wires the donations service.
func NewService(repo Repository, tx txRunner, verifier SignatureVerifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("donations: repository is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("donations: tx runner is required")
	}
	if verifier == nil {
		return nil, fmt.Errorf("donations: signature verifier is required")
	}
	return &service{repo: repo, tx: tx, verifier: verifier}, nil
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	if input.PackageID == uuid.Nil || input.NGOID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "package id and ngo id are required")
	}
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	pkg, err := s.repo.FindPackage(ctx, input.PackageID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "package not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load package")
	}
	ngo, err := s.repo.FindNGO(ctx, input.NGOID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ngo not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ngo")
	}

	ref := newOrderRef()
	order := &models.Order{
		OrderRef:       ref,
		UserID:         input.ActorUserID,
		PackageID:      pkg.ID,
		NGOID:          ngo.ID,
		Amount:         pkg.Amount.Mul(decimal.NewFromInt(int64(quantity))),
		Quantity:       quantity,
		Status:         enums.PaymentStatusPending,
		GatewayOrderID: ref,
	}
	saved, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	return &CreateOrderResult{Order: saved, Package: pkg, NGO: ngo}, nil
}

func (s *service) VerifyPayment(ctx context.Context, input VerifyPaymentInput) (*VerifyPaymentResult, error) {
	if input.OrderRef == "" || input.PaymentRef == "" || input.Signature == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order ref, payment ref, and signature are required")
	}
	if !s.verifier.Verify(input.OrderRef, input.PaymentRef, input.Signature) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment signature")
	}

	var result *VerifyPaymentResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrderByRef(ctx, input.OrderRef, input.ActorUserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status == enums.PaymentStatusCompleted {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order already completed")
		}

		pkg, err := repo.FindPackage(ctx, order.PackageID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "package not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load package")
		}

		updates := map[string]any{
			"status":     enums.PaymentStatusCompleted,
			"payment_id": input.PaymentRef,
			"updated_at": time.Now().UTC(),
		}
		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete order")
		}

		donation, err := repo.CreateDonation(ctx, &models.Donation{
			UserID:        order.UserID,
			NGOID:         order.NGOID,
			PackageID:     order.PackageID,
			PackageTitle:  pkg.Title,
			PackageAmount: pkg.Amount,
			TotalAmount:   order.Amount,
			PaymentStatus: enums.PaymentStatusCompleted,
			TransactionID: input.PaymentRef,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create donation")
		}

		txn, err := repo.CreateTransaction(ctx, &models.Transaction{
			DonationID:  &donation.ID,
			DonorUserID: order.UserID,
			NGOID:       order.NGOID,
			PackageID:   order.PackageID,
			Status:      enums.TransactionStatusPending,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create transaction")
		}

		if err := repo.EnsureAssignment(ctx, order.PackageID, order.NGOID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ensure assignment")
		}

		result = &VerifyPaymentResult{
			OrderRef:      input.OrderRef,
			PaymentRef:    input.PaymentRef,
			DonationID:    donation.ID,
			TransactionID: txn.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]DonationEntry, error) {
	rows, err := s.repo.ListDonationsForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list donations")
	}
	return rows, nil
}

func (s *service) ListAll(ctx context.Context) ([]DonationEntry, error) {
	rows, err := s.repo.ListDonationsAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list donations")
	}
	return rows, nil
}

func (s *service) History(ctx context.Context, userID uuid.UUID) ([]OrderEntry, error) {
	rows, err := s.repo.ListOrdersForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order history")
	}
	return rows, nil
}

func (s *service) Orders(ctx context.Context) ([]OrderEntry, error) {
	rows, err := s.repo.ListOrdersAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, nil
}

func (s *service) Statistics(ctx context.Context) (*StatisticsResult, error) {
	stats, err := s.repo.AggregateOrders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate orders")
	}
	recent, err := s.repo.ListRecentOrders(ctx, recentOrdersLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recent orders")
	}
	return &StatisticsResult{Statistics: *stats, RecentOrders: recent}, nil
}

func newOrderRef() string {
	return "order_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}
