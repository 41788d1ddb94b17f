// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements sign-in, self-registration and sign-out.

# Architecture

  - Service: verifies credentials, issues RS256 access tokens and revokes them.
  - RevocationStore: remembers revoked token ids until they would expire anyway.
    Redis backs it in deployments; an in-process map backs it otherwise.
  - Handler: the public /login, /register and /check routes plus /logout.

Account storage itself belongs to the account package. This package only reads
accounts to authenticate them.
*/
package auth

import (
	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/sec"
)

// Session is the outcome of a successful login.
type Session struct {
	Token  string
	Claims *sec.AuthClaims
	User   *domain.User
}
