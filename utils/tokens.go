package utils

import (
	"context"
	"fmt"
	"time"

	"residency-server/config"
	"residency-server/models"
	"residency-server/storage"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// AccessToken is the claim set carried by every bearer token.
type AccessToken struct {
	ID           string `json:"id"`
	Role         string `json:"role"`
	IsSuperAdmin bool   `json:"is_super_admin"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

var (
	accessTokenSigner    *jwt.Signer
	refreshTokenSigner   *jwt.Signer
	accessTokenVerifier  *jwt.Verifier
	refreshTokenVerifier *jwt.Verifier
	refreshTokenTTL      time.Duration
)

// InitTokens must run before any token is signed or verified.
func InitTokens(cfg config.Config) {
	accessTokenSigner = jwt.NewSigner(jwt.HS256, []byte(cfg.AccessTokenSecret), cfg.AccessTokenTTL)
	refreshTokenSigner = jwt.NewSigner(jwt.HS256, []byte(cfg.RefreshTokenSecret), cfg.RefreshTokenTTL)
	refreshTokenTTL = cfg.RefreshTokenTTL

	accessTokenVerifier = jwt.NewVerifier(jwt.HS256, []byte(cfg.AccessTokenSecret))
	accessTokenVerifier.ErrorHandler = func(ctx iris.Context, err error) {
		JSONError(ctx, iris.StatusUnauthorized, "unauthorized", "Missing or invalid token")
	}
	refreshTokenVerifier = jwt.NewVerifier(jwt.HS256, []byte(cfg.RefreshTokenSecret))
}

// VerifyAccessToken rejects the request with 401 unless it carries a valid
// bearer token.
func VerifyAccessToken() iris.Handler {
	return accessTokenVerifier.Verify(func() interface{} { return new(AccessToken) })
}

func SignAccessToken(user models.User) (string, error) {
	token, err := accessTokenSigner.Sign(AccessToken{
		ID:           user.ID.String(),
		Role:         user.Role,
		IsSuperAdmin: user.IsSuperAdmin,
	})
	if err != nil {
		return "", err
	}
	return string(token), nil
}

// CreateTokenPair signs both tokens and registers the refresh token as
// redeemable.
func CreateTokenPair(ctx context.Context, user models.User) (TokenPair, error) {
	accessToken, err := SignAccessToken(user)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, err := refreshTokenSigner.Sign(jwt.Claims{
		ID:      uuid.NewString(),
		Subject: user.ID.String(),
	})
	if err != nil {
		return TokenPair{}, err
	}

	if err := storage.Tokens.Put(ctx, string(refreshToken), refreshTokenTTL+5*time.Minute); err != nil {
		return TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: string(refreshToken)}, nil
}

// RedeemRefreshToken verifies a refresh token, consumes it and returns the
// user it was issued to.
func RedeemRefreshToken(ctx context.Context, token string) (uuid.UUID, error) {
	verified, err := refreshTokenVerifier.VerifyToken([]byte(token))
	if err != nil {
		return uuid.Nil, ErrAuthentication("Invalid refresh token")
	}

	live, err := storage.Tokens.Take(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	if !live {
		return uuid.Nil, ErrAuthentication("Refresh token already used or revoked")
	}

	userID, err := uuid.Parse(verified.StandardClaims.Subject)
	if err != nil {
		return uuid.Nil, ErrAuthentication("Invalid refresh token")
	}
	return userID, nil
}
