package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	// Secret is the HMAC-SHA256 symmetric key.
	Secret string

	// PublicKeyPEM is a PEM-encoded RSA public key for validating tokens
	// issued by the gateway. When set, RS256 validation is used.
	PublicKeyPEM string

	Issuer     string
	Expiration time.Duration
}

// JWTService validates (and, in HMAC mode, issues) JWT tokens.
type JWTService struct {
	config    JWTConfig
	publicKey any
	useRSA    bool
}

// NewJWTService creates a JWTService. With PublicKeyPEM set the service runs
// in RS256 validation-only mode; with only Secret set it runs in HMAC mode
// and can also issue tokens (used by tests and local tooling).
func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	svc := &JWTService{config: cfg}

	switch {
	case cfg.PublicKeyPEM != "":
		pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("parse RSA public key: %w", err)
		}
		svc.publicKey = pubKey
		svc.useRSA = true

	case cfg.Secret != "":
		svc.useRSA = false

	default:
		return nil, fmt.Errorf("jwt configuration requires PublicKeyPEM or Secret")
	}

	return svc, nil
}

// GenerateToken creates a signed token for the given user. Only available in
// HMAC mode.
func (s *JWTService) GenerateToken(userID, merchantID uuid.UUID, roles []string) (string, error) {
	if s.useRSA {
		return "", fmt.Errorf("cannot generate token: validation-only mode")
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		UserID:     userID,
		MerchantID: merchantID,
		Roles:      roles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT token string.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if s.useRSA {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v (expected RS256)", token.Header["alg"])
			}
			return s.publicKey, nil
		}
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if s.config.Issuer != "" && claims.Issuer != s.config.Issuer {
		return nil, fmt.Errorf("invalid issuer: got %q, want %q", claims.Issuer, s.config.Issuer)
	}

	return claims, nil
}

// LoadKeyFromFile reads a PEM-encoded key from a file path.
func LoadKeyFromFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file %q: %w", path, err)
	}
	return data, nil
}
