package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/repository"
)

// ReceiptGenerator renders a sale receipt as a PDF document.
type ReceiptGenerator interface {
	SaleReceipt(receipt model.SaleReceipt) ([]byte, error)
}

type SalesService struct {
	transactions *repository.TransactionRepository
	properties   *repository.PropertyRepository
	clients      *repository.ClientRepository
	activity     *repository.ActivityRepository
	receipts     ReceiptGenerator
}

func NewSalesService(
	transactions *repository.TransactionRepository,
	properties *repository.PropertyRepository,
	clients *repository.ClientRepository,
	activity *repository.ActivityRepository,
	receipts ReceiptGenerator,
) *SalesService {
	return &SalesService{
		transactions: transactions,
		properties:   properties,
		clients:      clients,
		activity:     activity,
		receipts:     receipts,
	}
}

type RecordSaleInput struct {
	PropertyID  int64
	ClientID    int64
	PaymentMode string
	AmountPaid  float64
	Discount    float64
	Principal   model.Principal
}

type RecordSaleResult struct {
	TransactionID int64
	Balance       float64
	ReceiptName   string
	Receipt       []byte
}

// RecordSale sells an Available parcel to a client. The transaction
// row and the Sold flip commit together; the receipt is rendered after
// the commit.
func (s *SalesService) RecordSale(ctx context.Context, input RecordSaleInput) (*RecordSaleResult, error) {
	if input.PaymentMode == "" {
		return nil, fmt.Errorf("%w: payment mode is required", ErrInvalidInput)
	}
	if input.AmountPaid < 0 || input.Discount < 0 {
		return nil, fmt.Errorf("%w: amounts cannot be negative", ErrInvalidInput)
	}

	property, err := s.properties.GetByID(ctx, input.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: property %d", ErrNotFound, input.PropertyID)
		}
		return nil, err
	}
	if property.Status != model.PropertyStatusAvailable {
		return nil, fmt.Errorf("%w: property %d is not available", ErrConflict, input.PropertyID)
	}

	client, err := s.clients.GetByID(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: client %d", ErrNotFound, input.ClientID)
		}
		return nil, err
	}

	balance := property.Price - input.Discount - input.AmountPaid
	if balance < 0 {
		return nil, fmt.Errorf("%w: payment exceeds price after discount", ErrInvalidInput)
	}

	now := time.Now()
	receiptNumber := uuid.NewString()
	receiptName := fmt.Sprintf("receipt-%s.pdf", receiptNumber)

	addedBy := &input.Principal.UserID
	transactionID, err := s.transactions.RecordSale(ctx, model.Transaction{
		PropertyID:      input.PropertyID,
		ClientID:        input.ClientID,
		PaymentMode:     input.PaymentMode,
		TotalAmountPaid: input.AmountPaid,
		Discount:        input.Discount,
		Balance:         balance,
		TransactionDate: now,
		ReceiptPath:     receiptName,
		AddedByUserID:   addedBy,
	})
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotAvailable) {
			return nil, fmt.Errorf("%w: property %d is not available", ErrConflict, input.PropertyID)
		}
		return nil, err
	}

	receipt, err := s.receipts.SaleReceipt(model.SaleReceipt{
		ReceiptNumber:   receiptNumber,
		TransactionID:   transactionID,
		TransactionDate: now,
		BuyerName:       client.Name,
		BuyerPhone:      client.TelephoneNumber,
		TitleDeedNumber: property.TitleDeedNumber,
		Location:        property.Location,
		Size:            property.Size,
		Price:           property.Price,
		PaymentMode:     input.PaymentMode,
		AmountPaid:      input.AmountPaid,
		Discount:        input.Discount,
		Balance:         balance,
		ServedBy:        input.Principal.Username,
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, input.Principal.UserID, "sale_recorded",
		fmt.Sprintf("property %q sold to %q (transaction %d)", property.TitleDeedNumber, client.Name, transactionID))

	return &RecordSaleResult{
		TransactionID: transactionID,
		Balance:       balance,
		ReceiptName:   receiptName,
		Receipt:       receipt,
	}, nil
}

func (s *SalesService) Get(ctx context.Context, id int64) (*model.Transaction, error) {
	transaction, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return transaction, nil
}

func (s *SalesService) ListByProperty(ctx context.Context, propertyID int64) ([]model.Transaction, error) {
	return s.transactions.ListByProperty(ctx, propertyID)
}

func (s *SalesService) ListByClient(ctx context.Context, clientID int64) ([]model.Transaction, error) {
	return s.transactions.ListByClient(ctx, clientID)
}

func (s *SalesService) ListDetailed(ctx context.Context, filter repository.TransactionFilter) ([]model.TransactionRow, error) {
	return s.transactions.ListDetailed(ctx, filter)
}

// PendingBalance sums outstanding balances across open sales.
func (s *SalesService) PendingBalance(ctx context.Context) (float64, error) {
	return s.transactions.PendingBalance(ctx)
}

func (s *SalesService) Update(ctx context.Context, principal model.Principal, id int64, changes map[string]interface{}) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if len(changes) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	if err := s.transactions.Update(ctx, id, changes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.audit(ctx, principal.UserID, "sale_updated", fmt.Sprintf("transaction id %d", id))
	return nil
}

func (s *SalesService) audit(ctx context.Context, userID int64, action, details string) {
	_ = s.activity.Append(ctx, userID, action, details)
}
