package handler

type AccountActionParams struct {
	AccountID int64  `param:"account_id"`
	Action    string `json:"action"`
}

type AccountQueryParams struct {
	Query string `query:"q"`
}

type AdminKeyParams struct {
	Key string `json:"key"`
}

type ProductIDParams struct {
	ProductID int64 `param:"product_id" json:"product_id"`
}

type OrderParams struct {
	OrderID string `param:"order_id"`
}

type ChatHistoryParams struct {
	ChatType string `query:"type"`
}

type ConfigParams struct {
	SessionExpiresHours int64   `json:"session_expires_hours"`
	PaymentDelaySeconds float64 `json:"payment_delay_seconds"`
	RateLimitPerSecond  float64 `json:"rate_limit_per_second"`
}
