package adaptor

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"learnhub/biz/application/dto/basic"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/consts"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

func setupKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pub := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	config.SetConfig(&config.Config{Auth: config.Auth{PublicKey: string(pub)}})
	return key
}

func sign(t *testing.T, key *ecdsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestParseUserMeta(t *testing.T) {
	key := setupKey(t)
	exp := time.Now().Add(time.Hour).Unix()
	token := sign(t, key, jwt.MapClaims{
		"sub":   "user_abc",
		"email": "ann@example.com",
		"name":  "Ann",
		"exp":   exp,
	})

	meta, err := ParseUserMeta("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user_abc", meta.UserId)
	assert.Equal(t, "ann@example.com", meta.Email)
	assert.Equal(t, "Ann", meta.Name)
	assert.Equal(t, exp, meta.Exp)
}

func TestParseUserMetaRejects(t *testing.T) {
	key := setupKey(t)

	_, err := ParseUserMeta("")
	assert.Error(t, err)

	expired := sign(t, key, jwt.MapClaims{"sub": "u", "exp": time.Now().Add(-time.Hour).Unix()})
	_, err = ParseUserMeta(expired)
	assert.Error(t, err)

	noSubject := sign(t, key, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	_, err = ParseUserMeta(noSubject)
	assert.Error(t, err)

	hmac, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ParseUserMeta(hmac)
	assert.Error(t, err)
}

func TestExtractUserMetaFromContext(t *testing.T) {
	ctx := WithUserMeta(context.Background(), &basic.UserMeta{UserId: "user_abc"})
	assert.Equal(t, "user_abc", ExtractUserMeta(ctx).GetUserId())

	assert.Equal(t, "", ExtractUserMeta(context.Background()).GetUserId())
}

func TestHttpStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, httpStatus(consts.ErrNotAuthentication.Code()))
	assert.Equal(t, http.StatusForbidden, httpStatus(consts.ErrNotCourseOwner.Code()))
	assert.Equal(t, http.StatusNotFound, httpStatus(codes.NotFound))
	assert.Equal(t, http.StatusBadRequest, httpStatus(consts.ErrInvalidRating.Code()))
	assert.Equal(t, http.StatusConflict, httpStatus(consts.ErrCourseHasStudents.Code()))
	assert.Equal(t, http.StatusServiceUnavailable, httpStatus(codes.Unavailable))
	assert.Equal(t, http.StatusInternalServerError, httpStatus(codes.Unknown))
}
