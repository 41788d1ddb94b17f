// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages user accounts: profiles, credentials and role sets.

# Validation per operation

Each write validates the whole account with the options below. Only the
operations that change a credential or a unique key pay for the checks.

  - create and self-registration: password policy and uniqueness
  - PUT/PATCH profile: neither (only roles and active change)
  - password change: password policy
  - username or email change: uniqueness

# Role sets

Changing a role set, or creating an account with anything other than the
default {USER}, requires ROOT.
*/
package account

import "github.com/taibuivan/folio/internal/platform/validate"

var (
	createOptions   = validate.Options{CheckPassword: true, CheckUniqueness: true}
	profileOptions  = validate.Options{}
	passwordOptions = validate.Options{CheckPassword: true}
	identityOptions = validate.Options{CheckUniqueness: true}
)
