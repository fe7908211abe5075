package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjmin/go-board/models"
)

const (
	testIssuer  = "go-board-test"
	testSignKey = "test-sign-key"
)

var testIdentity = models.Identity{
	AccountID: 42,
	Username:  "alice",
	Role:      models.RoleUser,
}

func TestGenerateSessionToken_Success(t *testing.T) {
	token, err := GenerateSessionToken(testIssuer, testIdentity, time.Hour, testSignKey)
	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, int64(42), token.AccountID)
	assert.Equal(t, "alice", token.Username)
	assert.Equal(t, models.RoleUser, token.Role)
}

func TestGenerateSessionToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		signKey  string
	}{
		{"empty issuer", "", time.Hour, testSignKey},
		{"zero duration", testIssuer, 0, testSignKey},
		{"empty sign key", testIssuer, time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSessionToken(tt.issuer, testIdentity, tt.duration, tt.signKey)
			require.Error(t, err)
		})
	}
}

func TestValidateAndParseSessionToken_RoundTrip(t *testing.T) {
	issued, err := GenerateSessionToken(testIssuer, testIdentity, time.Hour, testSignKey)
	require.NoError(t, err)

	parsed, err := ValidateAndParseSessionToken(issued.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)

	assert.Equal(t, testIdentity, parsed.Identity())
}

func TestValidateAndParseSessionToken_WrongKey(t *testing.T) {
	issued, err := GenerateSessionToken(testIssuer, testIdentity, time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseSessionToken(issued.SignedString, "another-key", testIssuer)
	require.Error(t, err)
}

func TestValidateAndParseSessionToken_WrongIssuer(t *testing.T) {
	issued, err := GenerateSessionToken(testIssuer, testIdentity, time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseSessionToken(issued.SignedString, testSignKey, "someone-else")
	require.Error(t, err)
}

func TestValidateAndParseSessionToken_Expired(t *testing.T) {
	issued, err := GenerateSessionToken(testIssuer, testIdentity, -time.Minute, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseSessionToken(issued.SignedString, testSignKey, testIssuer)
	require.Error(t, err)
}

func TestValidateAndParseSessionToken_Garbage(t *testing.T) {
	_, err := ValidateAndParseSessionToken("not.a.token", testSignKey, testIssuer)
	require.Error(t, err)
}

// The claims are a snapshot: the parsed role is whatever was current at
// issue time, regardless of later changes in the accounts table.
func TestSessionToken_CarriesRoleSnapshot(t *testing.T) {
	adminIdentity := models.Identity{AccountID: 1, Username: "admin", Role: models.RoleAdmin}

	issued, err := GenerateSessionToken(testIssuer, adminIdentity, time.Hour, testSignKey)
	require.NoError(t, err)

	parsed, err := ValidateAndParseSessionToken(issued.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, parsed.Role)
}
