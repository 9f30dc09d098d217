package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventsphere/backend/internal/auth"
	"github.com/eventsphere/backend/internal/models"
)

func testTokenService(ttl time.Duration) *auth.TokenService {
	return auth.NewTokenService(auth.TokenConfig{
		SecretKey: "unit-test-secret",
		TokenTTL:  ttl,
		Issuer:    "eventsphere-test",
	})
}

func TestGenerateAndValidate(t *testing.T) {
	tokens := testTokenService(time.Hour)
	user := &models.User{ID: 42, Role: models.RoleOrganizer}

	token, expiresIn, err := tokens.Generate(user)
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "organizer", claims.Role)
	assert.Equal(t, "eventsphere-test", claims.Issuer)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestValidateExpiredToken(t *testing.T) {
	tokens := testTokenService(-time.Minute)

	token, _, err := tokens.Generate(&models.User{ID: 1, Role: models.RoleUser})
	require.NoError(t, err)

	_, err = tokens.Validate(token)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestValidateRejectsForeignAndBrokenTokens(t *testing.T) {
	tokens := testTokenService(time.Hour)

	foreign := auth.NewTokenService(auth.TokenConfig{
		SecretKey: "some-other-secret",
		TokenTTL:  time.Hour,
		Issuer:    "eventsphere-test",
	})
	token, _, err := foreign.Generate(&models.User{ID: 1, Role: models.RoleUser})
	require.NoError(t, err)

	_, err = tokens.Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = tokens.Validate("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	// Unsigned tokens must not slip through the keyfunc.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tokens.Validate(unsigned)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestClaimsUserID(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		want    uint
		wantErr bool
	}{
		{name: "numeric", subject: "17", want: 17},
		{name: "zero", subject: "0", wantErr: true},
		{name: "negative", subject: "-4", wantErr: true},
		{name: "text", subject: "abc", wantErr: true},
		{name: "empty", subject: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: tt.subject}}
			id, err := claims.UserID()
			if tt.wantErr {
				assert.ErrorIs(t, err, auth.ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "empty header", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
		{name: "scheme only", header: "Bearer", wantErr: true},
		{name: "empty token", header: "Bearer ", wantErr: true},
		{name: "lowercase scheme", header: "bearer abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := auth.ExtractBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, auth.ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}
