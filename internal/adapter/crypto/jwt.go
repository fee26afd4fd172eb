package crypto

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

var _ primary.JWTService = (*JWTServiceImpl)(nil)

const defaultTokenTTL = time.Hour

type JWTServiceImpl struct {
	HMACSecretKey string
	tokenTTL      time.Duration
	leeway        time.Duration
}

func NewJWTService(jwtConfig *config.JwtConfig) *JWTServiceImpl {
	ttl := jwtConfig.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTServiceImpl{
		HMACSecretKey: jwtConfig.Secret,
		tokenTTL:      ttl,
		leeway:        jwtConfig.Leeway,
	}
}

func (J JWTServiceImpl) GenerateTokenHMAC(ctx context.Context, method string, claims map[string]interface{}) (string, error) {
	signingMethod := jwt.GetSigningMethod(method)
	if signingMethod == nil {
		return "", fmt.Errorf("unsupported signing method: %s", method)
	}

	if _, exists := claims["exp"]; !exists {
		claims["exp"] = time.Now().Add(J.tokenTTL).Unix()
	}

	tok := jwt.NewWithClaims(signingMethod, jwt.MapClaims(claims))
	return tok.SignedString([]byte(J.HMACSecretKey))
}

func (J JWTServiceImpl) VerifyTokenHMAC(ctx context.Context, token string, method string) (bool, error) {
	signingMethod := jwt.GetSigningMethod(method)
	if signingMethod == nil {
		return false, fmt.Errorf("unsupported signing method: %s", method)
	}

	parsedToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(J.HMACSecretKey), nil
	}, jwt.WithValidMethods([]string{signingMethod.Alg()}), jwt.WithLeeway(J.leeway))
	if err != nil {
		return false, fmt.Errorf("%w: %w", errs.InvalidToken, err)
	}

	return parsedToken.Valid, nil
}

// DecodeTokenPayload reads the identity claims without verifying the
// signature. Call VerifyTokenHMAC first.
func (J JWTServiceImpl) DecodeTokenPayload(ctx context.Context, token string) (domain.AuthPayload, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return domain.AuthPayload{}, fmt.Errorf("%w: %w", errs.InvalidToken, err)
	}

	payload := domain.AuthPayload{
		UserID:   stringClaim(claims, "id"),
		Username: stringClaim(claims, "username"),
		Role:     stringClaim(claims, "role"),
	}
	if payload.UserID == "" {
		payload.UserID = stringClaim(claims, "sub")
	}
	if payload.UserID == "" {
		return domain.AuthPayload{}, errs.MissingIdentity
	}
	return payload, nil
}

// stringClaim accepts string and numeric ids.
func stringClaim(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}
