package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTer(ttl time.Duration) *JWTer {
	return &JWTer{Secret: []byte("s3cret"), Issuer: "jobboard", TTL: ttl}
}

func TestIssueParseRoundTrip(t *testing.T) {
	j := newJWTer(time.Hour)
	tok, err := j.Issue(7, "e@x.com", 2)
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), c.ID)
	assert.Equal(t, "e@x.com", c.Email)
	assert.Equal(t, uint(2), c.RoleID)
	assert.Equal(t, "jobboard", c.Issuer)
}

func TestParseExpired(t *testing.T) {
	j := newJWTer(-time.Minute)
	tok, err := j.Issue(1, "a@x.com", 3)
	require.NoError(t, err)

	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseRejectsForeignTokens(t *testing.T) {
	j := newJWTer(time.Hour)

	other := &JWTer{Secret: []byte("other"), Issuer: "jobboard", TTL: time.Hour}
	tok, _ := other.Issue(1, "a@x.com", 3)
	_, err := j.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	wrongIss := &JWTer{Secret: []byte("s3cret"), Issuer: "someone-else", TTL: time.Hour}
	tok, _ = wrongIss.Issue(1, "a@x.com", 3)
	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ID: 1})
	s, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	_, err = j.Parse(s)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = j.Parse("garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
