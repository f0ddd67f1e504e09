package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drelocd/estate-service/internal/model"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	parser := NewParser("test-secret")

	principal := model.Principal{
		UserID:   7,
		Username: "clerk",
		Role:     model.RoleAdmin,
		IsAgent:  true,
	}
	token, err := issuer.Issue(principal)
	require.NoError(t, err)

	claims, err := parser.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, principal, claims.Principal())
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	token, err := issuer.Issue(model.Principal{UserID: 1, Username: "clerk", Role: model.RoleUser})
	require.NoError(t, err)

	_, err = NewParser("other-secret").Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	issuer := &Issuer{secret: []byte("test-secret"), ttl: -time.Minute}
	token, err := issuer.Issue(model.Principal{UserID: 1, Username: "clerk", Role: model.RoleUser})
	require.NoError(t, err)

	_, err = NewParser("test-secret").Parse(token)
	assert.Error(t, err)
}
