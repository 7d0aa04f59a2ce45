package constant

import "time"

const (
	ContextKeyRequestID = "requestid"
	ContextKeyPlayerID  = "playerid"

	RequestIDHeader = "X-Urlate-Request-ID"

	// PlayerIDHeader carries the authenticated player id. It is set by the gateway
	// after session validation and is trusted as-is.
	PlayerIDHeader = "X-Player-ID"

	AdminKeyHeader = "X-Urlate-Admin-Key"

	IdempotencyHeader    = "X-Urlate-Idempotency"
	IdempotencyKeyHeader = "X-Urlate-Idempotency-Key"

	IdempotencyKeyLengthLimit = 128

	PlayRecordIdempotencyLifetime    = time.Hour * 24
	PlayRecordIdempotencyRedisPrefix = "idempotency:play-record:"
)
