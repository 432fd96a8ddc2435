// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voyara/internal/platform/sec"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestTokenService_RoundTrip(t *testing.T) {
	key := newKey(t)
	service := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "voyara.app")

	token, err := service.GenerateAccessToken("0xabc", "lan", string(sec.RoleGuide), time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", claims.UserID)
	assert.Equal(t, "lan", claims.Username)
	assert.Equal(t, "guide", claims.Role)
	assert.Equal(t, "0xabc", claims.Subject)
}

func TestTokenService_RejectsForeignIssuer(t *testing.T) {
	key := newKey(t)
	signer := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "elsewhere.example")
	verifier := sec.NewTokenServiceFromKeys(nil, &key.PublicKey, "voyara.app")

	token, err := signer.GenerateAccessToken("0xabc", "lan", string(sec.RoleAdmin), time.Minute)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsExpired(t *testing.T) {
	key := newKey(t)
	service := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "voyara.app")

	token, err := service.GenerateAccessToken("0xabc", "lan", string(sec.RoleTraveler), -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsOtherKey(t *testing.T) {
	signing := newKey(t)
	other := newKey(t)

	signer := sec.NewTokenServiceFromKeys(signing, &signing.PublicKey, "voyara.app")
	verifier := sec.NewTokenServiceFromKeys(nil, &other.PublicKey, "voyara.app")

	token, err := signer.GenerateAccessToken("0xabc", "lan", string(sec.RoleTraveler), time.Minute)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestTokenService_VerifyOnlyCannotSign(t *testing.T) {
	key := newKey(t)
	verifier := sec.NewTokenServiceFromKeys(nil, &key.PublicKey, "voyara.app")

	_, err := verifier.GenerateAccessToken("0xabc", "lan", string(sec.RoleAdmin), time.Minute)
	assert.ErrorIs(t, err, sec.ErrSigningDisabled)
}

func TestRejectAllVerifier(t *testing.T) {
	_, err := sec.RejectAllVerifier{}.VerifyToken("anything")
	assert.ErrorIs(t, err, sec.ErrVerificationDisabled)
}

func TestUserRole_AtLeast(t *testing.T) {
	tests := []struct {
		role   sec.UserRole
		target sec.UserRole
		want   bool
	}{
		{sec.RoleAdmin, sec.RoleAdmin, true},
		{sec.RoleAdmin, sec.RoleTraveler, true},
		{sec.RoleModerator, sec.RoleAdmin, false},
		{sec.RoleGuide, sec.RoleTraveler, true},
		{sec.UserRole("ghost"), sec.RoleTraveler, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"_"+string(tt.target), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.target))
		})
	}

	assert.True(t, sec.RoleGuide.IsValid())
	assert.False(t, sec.UserRole("ghost").IsValid())
}
