package dto

import "encoding/json"

// Envelope is the success/message wrapper used by the cache, sim and coupon
// endpoints.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CacheSetRequest is the body of POST /cache/:key. TTL is in seconds; zero
// means the entry never expires.
type CacheSetRequest struct {
	Value json.RawMessage `json:"value" binding:"required"`
	TTL   int             `json:"ttl"`
}

// SimUsageSetRequest is the body of POST /sim-usage/:iccid.
type SimUsageSetRequest struct {
	Data json.RawMessage `json:"data" binding:"required"`
}

// ErrorLogRequest is the body of POST /error.
type ErrorLogRequest struct {
	Message string `json:"message" binding:"required"`
}

// CreateProfileResponse returns the freshly minted profile address.
type CreateProfileResponse struct {
	PublicKey string `json:"publicKey"`
}
