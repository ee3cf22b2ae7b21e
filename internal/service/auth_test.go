package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-jobboard/internal/core/auth"
	"go-gin-jobboard/internal/domain"
)

func TestRegisterDuplicateEmail(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := h.register(t, "e@x.com", domain.RoleEmployer)
	assert.Equal(t, domain.RoleEmployer, u.RoleName())

	_, err := h.svc.Auth.Register(ctx, RegisterInput{Email: "E@x.com ", Password: "Passw0rd!"})
	assertKind(t, err, domain.KindConflict, "Email already exists")

	var n int64
	require.NoError(t, h.store.DB().Model(&domain.User{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestRegisterDefaultsToJobseekerWithProfile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	u, err := h.svc.Auth.Register(ctx, RegisterInput{Email: "j@x.com", Password: "Passw0rd!", FullName: "Tran B"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleJobseeker, u.RoleName())
	p, err := h.store.Profiles().FindByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Tran B", p.FullName)

	e, err := h.svc.Auth.Register(ctx, RegisterInput{Email: "boss@x.com", Password: "Passw0rd!", FullName: "Boss", RoleName: domain.RoleEmployer})
	require.NoError(t, err)
	p, err = h.store.Profiles().FindByUserID(ctx, e.ID)
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = h.svc.Auth.Register(ctx, RegisterInput{Email: "x@x.com", Password: "Passw0rd!", RoleName: "root"})
	assertKind(t, err, domain.KindNotFound, "Role not found")
}

func TestLoginFailuresLookIdentical(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.register(t, "j@x.com", domain.RoleJobseeker)

	_, wrongPw := h.svc.Auth.Login(ctx, LoginInput{Email: "j@x.com", Password: "nope"})
	_, unknown := h.svc.Auth.Login(ctx, LoginInput{Email: "ghost@x.com", Password: "Passw0rd!"})
	assertKind(t, wrongPw, domain.KindUnauthorized, "Invalid email or password")
	assert.Equal(t, wrongPw, unknown)
}

func TestLoginIssuesTokenThatIdentifies(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := h.register(t, "j@x.com", domain.RoleJobseeker)

	res, err := h.svc.Auth.Login(ctx, LoginInput{Email: "j@x.com", Password: "Passw0rd!"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.Equal(t, u.ID, res.User.ID)

	claims, err := h.jwt.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.RoleID, claims.RoleID)
	assert.Equal(t, "j@x.com", claims.Email)

	me, err := h.svc.Auth.Identify(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleJobseeker, me.RoleName())
}

func TestIdentifyFailures(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := h.register(t, "j@x.com", domain.RoleJobseeker)

	_, err := h.svc.Auth.Identify(ctx, "garbage")
	assertKind(t, err, domain.KindUnauthorized, "Invalid token")

	expired := &auth.JWTer{Secret: h.jwt.Secret, Issuer: h.jwt.Issuer, TTL: -time.Minute}
	tok, err := expired.Issue(u.ID, u.Email, u.RoleID)
	require.NoError(t, err)
	_, err = h.svc.Auth.Identify(ctx, tok)
	assertKind(t, err, domain.KindUnauthorized, "Token has expired")

	tok, err = h.jwt.Issue(u.ID, u.Email, u.RoleID)
	require.NoError(t, err)
	require.NoError(t, h.store.Users().Delete(ctx, u.ID))
	_, err = h.svc.Auth.Identify(ctx, tok)
	assertKind(t, err, domain.KindUnauthorized, "User not found")
}
