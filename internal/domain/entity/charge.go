package entity

import "time"

// Currency of a product or order
type Currency string

const (
	CurrencyCNY Currency = "CNY"
	CurrencyUSD Currency = "USD"
)

// ChargeProductState is the sale state of a product
type ChargeProductState string

const (
	ChargeProductEnabled  ChargeProductState = "enable"
	ChargeProductDisabled ChargeProductState = "disable"
)

// ChargeProduct is a purchasable credit package
type ChargeProduct struct {
	ID             uint64
	Amount         int64 // minor units
	OriginalAmount int64
	Credit         int64
	Currency       Currency
	Locale         string
	Title          string
	Tag            []string
	Message        string
	State          ChargeProductState
	CreatedAt      time.Time
}

// OrderPhase is the payment lifecycle of an order
type OrderPhase string

const (
	OrderPhasePending  OrderPhase = "Pending"
	OrderPhasePaid     OrderPhase = "Paid"
	OrderPhaseCanceled OrderPhase = "Canceled"
	OrderPhaseFailed   OrderPhase = "Failed"
)

// PaymentChannel is where the credit of an order came from
type PaymentChannel string

const (
	PaymentChannelAlipay     PaymentChannel = "Alipay"
	PaymentChannelWeChat     PaymentChannel = "WeChat"
	PaymentChannelStripe     PaymentChannel = "Stripe"
	PaymentChannelGiftCode   PaymentChannel = "GiftCode"
	PaymentChannelInviteCode PaymentChannel = "InviteCode"
	PaymentChannelEventGift  PaymentChannel = "Event Gift"
)

// ChargeOrder records a credit purchase or grant
type ChargeOrder struct {
	ID        uint64
	UserID    string
	UserInfo  map[string]any
	Amount    int64
	Credit    int64
	Phase     OrderPhase
	Channel   PaymentChannel
	Currency  Currency
	PaymentAt *time.Time
	Result    map[string]any
	CreatedAt time.Time
}
