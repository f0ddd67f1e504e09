package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/repository"
)

// ExcelExporter renders reporting workbooks.
type ExcelExporter interface {
	SoldProperties(rows []model.SoldPropertyRow) ([]byte, error)
	ServicePayments(rows []model.ServicePaymentRow, summary []model.SalesSummaryRow) ([]byte, error)
}

type ReportService struct {
	properties *repository.PropertyRepository
	payments   *repository.ServicePaymentRepository
	excel      ExcelExporter
}

func NewReportService(
	properties *repository.PropertyRepository,
	payments *repository.ServicePaymentRepository,
	excel ExcelExporter,
) *ReportService {
	return &ReportService{properties: properties, payments: payments, excel: excel}
}

type ReportResult struct {
	FileName string
	Content  []byte
}

// SoldPropertiesReport exports every sold parcel in the period.
func (s *ReportService) SoldPropertiesReport(ctx context.Context, from, to *time.Time) (*ReportResult, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, fmt.Errorf("%w: from must be before or equal to to", ErrInvalidInput)
	}

	total, err := s.properties.CountSold(ctx, from, to)
	if err != nil {
		return nil, err
	}
	rows, err := s.properties.ListSold(ctx, int(total), 0, from, to)
	if err != nil {
		return nil, err
	}

	content, err := s.excel.SoldProperties(rows)
	if err != nil {
		return nil, err
	}
	return &ReportResult{
		FileName: buildReportFileName("sold-properties", from, to),
		Content:  content,
	}, nil
}

// ServicePaymentsReport exports the payment ledger plus a gross/net
// summary sheet for the period.
func (s *ReportService) ServicePaymentsReport(ctx context.Context, from, to *time.Time) (*ReportResult, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, fmt.Errorf("%w: from must be before or equal to to", ErrInvalidInput)
	}

	rows, _, err := s.payments.List(ctx, repository.PaymentFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	summary, err := s.payments.SalesSummary(ctx, false, from, to)
	if err != nil {
		return nil, err
	}

	content, err := s.excel.ServicePayments(rows, summary)
	if err != nil {
		return nil, err
	}
	return &ReportResult{
		FileName: buildReportFileName("service-payments", from, to),
		Content:  content,
	}, nil
}

func buildReportFileName(kind string, from, to *time.Time) string {
	period := "all"
	if from != nil && to != nil {
		period = fmt.Sprintf("%s-%s", from.Format("20060102"), to.Format("20060102"))
	} else if from != nil {
		period = "from-" + from.Format("20060102")
	} else if to != nil {
		period = "to-" + to.Format("20060102")
	}
	return fmt.Sprintf("%s-%s.xlsx", sanitizeFileName(kind), period)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
