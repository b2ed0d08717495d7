package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rewardhub/rewardhub-backend/internal/config"
)

// GenerateJWT generates a signed token carrying the account id and role
func GenerateJWT(accountID string, role string, cfg *config.Config) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["sub"] = accountID
	claims["role"] = role
	claims["exp"] = time.Now().Add(time.Second * time.Duration(cfg.JWT.ExpiresIn)).Unix()

	tokenString, err := token.SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateJWT validates a token and returns its claims
func ValidateJWT(tokenString string, cfg *config.Config) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWT.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// NormalizeCode canonicalizes a scanned or typed code: whitespace trimmed,
// upper-cased. Codes are stored in this form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// QRCodePrefix derives the batch prefix from a product name, e.g.
// "Premium Cement 50kg" -> "PRE".
func QRCodePrefix(productName string) string {
	name := strings.ToUpper(strings.TrimSpace(productName))
	if len(name) > 3 {
		name = name[:3]
	}
	return name
}

// FormatQRCode builds the code string for one QR in a batch. The batch id
// fragment keeps sequences unique across batches of the same product.
func FormatQRCode(prefix string, seq int, batchFragment string) string {
	return fmt.Sprintf("%s-%04d-%s", prefix, seq, strings.ToUpper(batchFragment))
}

// GenerateAgentCode produces a one-time invitation code, e.g. "AGT-7F3A2C"
func GenerateAgentCode() string {
	frag := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return "AGT-" + frag
}

// GenerateOTP produces a 6-digit one-time password
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
