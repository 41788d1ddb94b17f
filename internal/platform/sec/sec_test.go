// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/folio/internal/platform/sec"
)

func TestHasher_RoundTrip(t *testing.T) {
	hasher := sec.NewHasher(bcrypt.MinCost)

	digest, err := hasher.Hash("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "Secret123", digest)
	assert.True(t, hasher.Verify("Secret123", digest))
	assert.False(t, hasher.Verify("secret123", digest))
}

func newTestTokenService(t *testing.T, ttl time.Duration) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKey(key, "folio-test", ttl)
}

/*
TestTokenService_IssueVerify covers the normal token life cycle.
*/
func TestTokenService_IssueVerify(t *testing.T) {
	service := newTestTokenService(t, time.Minute)

	token, issued, err := service.Issue(42, "alice", sec.RoleSet{sec.RoleUser, sec.RoleRoot})
	require.NoError(t, err)
	require.NotEmpty(t, issued.ID)

	claims, err := service.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, issued.ID, claims.ID)
	assert.True(t, claims.Roles.Has(sec.RoleRoot))
}

func TestTokenService_Rejects(t *testing.T) {
	service := newTestTokenService(t, -time.Minute)
	other := newTestTokenService(t, time.Minute)

	expired, _, err := service.Issue(1, "bob", sec.DefaultRoles())
	require.NoError(t, err)
	_, err = service.Verify(expired)
	assert.Error(t, err, "expired token")

	foreign, _, err := other.Issue(1, "bob", sec.DefaultRoles())
	require.NoError(t, err)
	_, err = service.Verify(foreign)
	assert.Error(t, err, "token signed by another key")

	_, err = service.Verify("not-a-token")
	assert.Error(t, err)
}
