package auth

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/gatehouse-dev/gatehouse/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload embedded in issued tokens. Subject carries the
// identity's email, the stable user-facing identifier.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenIssuer mints and validates EdDSA-signed JWTs. The private key is
// provided once at construction and never rotated within a process
// lifetime; relying parties only need the public half.
type TokenIssuer struct {
	private  ed25519.PrivateKey
	public   ed25519.PublicKey
	validity time.Duration
}

func NewTokenIssuer(private ed25519.PrivateKey, validity time.Duration) (*TokenIssuer, error) {
	if len(private) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: private key must be %d bytes", common.ErrorSigning, ed25519.PrivateKeySize)
	}
	if validity <= 0 {
		return nil, fmt.Errorf("token validity must be positive, got %v", validity)
	}
	return &TokenIssuer{
		private:  private,
		public:   private.Public().(ed25519.PublicKey),
		validity: validity,
	}, nil
}

// Issue signs a token for the given subject, expiring after the configured
// validity window.
func (i *TokenIssuer) Issue(subject string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
	})

	signed, err := token.SignedString(i.private)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorSigning, err)
	}

	return signed, nil
}

// Verify checks the signature and expiry of a token and returns its subject.
// Failures map onto the shared sentinels: ErrTokenExpired for an elapsed
// exp, ErrMalformedToken for unparseable input, ErrInvalidToken otherwise.
func (i *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.public, nil
	})

	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "", common.ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", common.ErrTokenExpired
	case err != nil, !token.Valid:
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
