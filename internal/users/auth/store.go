// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # Volatile Data Access

// RevocationStore defines the contract for remembering revoked access tokens.
type RevocationStore interface {

	/*
		Revoke marks a token id as revoked for ttl.

		Parameters:
		  - context: context.Context
		  - tokenID: string (the jti claim)
		  - ttl: time.Duration (remaining lifetime of the token; non-positive is a no-op)

		Returns:
		  - error: Persistence failures
	*/
	Revoke(context context.Context, tokenID string, ttl time.Duration) error

	/*
		IsRevoked reports whether the token id was revoked and has not expired yet.

		Parameters:
		  - context: context.Context
		  - tokenID: string

		Returns:
		  - bool: true when revoked
		  - error: Retrieval failures
	*/
	IsRevoked(context context.Context, tokenID string) (bool, error)
}
