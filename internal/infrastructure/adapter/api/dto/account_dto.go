package dto

import (
	"time"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/usecase"
)

// AccountResponse is returned by GET /api/account
type AccountResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Credit    int64     `json:"credit"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAccountResponse maps a credit account
func NewAccountResponse(account *entity.CreditAccount, codec coreport.IDCodec) AccountResponse {
	return AccountResponse{
		ID:        codec.Encode(account.ID),
		UserID:    account.UserID,
		Credit:    account.Credit(),
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

// PageQueryRequest holds page and limit query parameters
type PageQueryRequest struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Billing is one billing row
type Billing struct {
	State       string    `json:"state"`
	Amount      int64     `json:"amount"`
	Type        string    `json:"type"`
	PolaroidID  string    `json:"polaroidId,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BillingListResponse is returned by GET /api/account/billing
type BillingListResponse struct {
	Records    []Billing  `json:"records"`
	Pagination Pagination `json:"pagination"`
}

// NewBillingListResponse maps a billing page; polaroid ids use the polaroid codec
func NewBillingListResponse(page *usecase.BillingPage, polaroidCodec coreport.IDCodec) BillingListResponse {
	records := make([]Billing, 0, len(page.Records))
	for _, b := range page.Records {
		record := Billing{
			State:       string(b.State),
			Amount:      b.Amount,
			Type:        string(b.Type),
			Description: b.Description,
			CreatedAt:   b.CreatedAt,
		}
		if b.PolaroidID != 0 {
			record.PolaroidID = polaroidCodec.Encode(b.PolaroidID)
		}
		records = append(records, record)
	}
	return BillingListResponse{Records: records, Pagination: NewPagination(page.Pagination)}
}

// RedeemGiftCodeRequest is the body of POST /api/gift-code/redeem
type RedeemGiftCodeRequest struct {
	Code string `json:"code" binding:"required,max=64"`
}

// RedeemGiftCodeResponse reports the credited amount and new balance
type RedeemGiftCodeResponse struct {
	Credited int64 `json:"credited"`
	Credit   int64 `json:"credit"`
}

// ChargeProduct is a purchasable credit pack
type ChargeProduct struct {
	ID             string   `json:"id"`
	Amount         int64    `json:"amount"`
	OriginalAmount int64    `json:"originalAmount"`
	Credit         int64    `json:"credit"`
	Currency       string   `json:"currency"`
	Locale         string   `json:"locale"`
	Title          string   `json:"title"`
	Tag            []string `json:"tag"`
	Message        string   `json:"message"`
}

// NewChargeProducts maps charge products with hashed ids
func NewChargeProducts(products []*entity.ChargeProduct, codec coreport.IDCodec) []ChargeProduct {
	out := make([]ChargeProduct, 0, len(products))
	for _, p := range products {
		tag := p.Tag
		if tag == nil {
			tag = []string{}
		}
		out = append(out, ChargeProduct{
			ID:             codec.Encode(p.ID),
			Amount:         p.Amount,
			OriginalAmount: p.OriginalAmount,
			Credit:         p.Credit,
			Currency:       string(p.Currency),
			Locale:         p.Locale,
			Title:          p.Title,
			Tag:            tag,
			Message:        p.Message,
		})
	}
	return out
}

// ChargeProductsResponse is returned by GET /api/charge-products
type ChargeProductsResponse struct {
	Data []ChargeProduct `json:"data"`
}

// ActivityResponse is returned by GET /api/activity
type ActivityResponse struct {
	App *string `json:"app"`
}

// HealthResponse is returned by GET /healthz
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
