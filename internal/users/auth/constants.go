// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Field Identifiers

// JSON field names of the authentication payloads.
const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldToken    = "token"
	FieldUser     = "user"
)
