package ocr

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartvillage/accounting/internal/domain"
)

const dateLayout = "2006-01-02"

// Extractor implements usecase.StatementExtractor against an external OCR
// service. The service's output is treated as untrusted input; callers
// validate every row before persisting it.
type Extractor struct {
	baseURL string
	client  *http.Client
}

// NewExtractor creates a new Extractor.
func NewExtractor(baseURL string, timeout time.Duration) *Extractor {
	return &Extractor{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type extractionResponse struct {
	BankName       string                `json:"bank_name"`
	AccountNumber  string                `json:"account_number"`
	AccountName    string                `json:"account_name"`
	PeriodStart    string                `json:"period_start"`
	PeriodEnd      string                `json:"period_end"`
	OpeningBalance decimal.Decimal       `json:"opening_balance"`
	ClosingBalance decimal.Decimal       `json:"closing_balance"`
	Confidence     float64               `json:"confidence"`
	Transactions   []transactionResponse `json:"transactions"`
}

type transactionResponse struct {
	Date         string          `json:"date"`
	Time         string          `json:"time"`
	Description  string          `json:"description"`
	Reference    string          `json:"reference"`
	CreditAmount decimal.Decimal `json:"credit_amount"`
	DebitAmount  decimal.Decimal `json:"debit_amount"`
	RawText      string          `json:"raw_text"`
}

// Extract uploads the statement file and returns the structured extraction.
func (e *Extractor) Extract(ctx context.Context, filePath string) (*domain.StatementExtraction, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open statement file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/statements/extract", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ocr request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ocr service returned status %d", resp.StatusCode)
	}

	var decoded extractionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode ocr response: %w", err)
	}

	return toExtraction(&decoded)
}

func toExtraction(resp *extractionResponse) (*domain.StatementExtraction, error) {
	periodStart, err := time.Parse(dateLayout, resp.PeriodStart)
	if err != nil {
		return nil, fmt.Errorf("parse period start: %w", err)
	}
	periodEnd, err := time.Parse(dateLayout, resp.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("parse period end: %w", err)
	}

	extraction := &domain.StatementExtraction{
		BankName:       resp.BankName,
		AccountNumber:  resp.AccountNumber,
		AccountName:    resp.AccountName,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		OpeningBalance: resp.OpeningBalance,
		ClosingBalance: resp.ClosingBalance,
		Confidence:     resp.Confidence,
	}

	for _, t := range resp.Transactions {
		// Rows with garbled dates are kept with a zero date so the
		// ingestion step can count and skip them.
		date, _ := time.Parse(dateLayout, t.Date)
		extraction.Transactions = append(extraction.Transactions, domain.ExtractedTransaction{
			Date:         date,
			Time:         t.Time,
			Description:  t.Description,
			Reference:    t.Reference,
			CreditAmount: t.CreditAmount,
			DebitAmount:  t.DebitAmount,
			RawText:      t.RawText,
		})
	}

	return extraction, nil
}

// Checksum returns the hex SHA-256 digest of the file's contents.
func (e *Extractor) Checksum(ctx context.Context, filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open statement file: %w", err)
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
