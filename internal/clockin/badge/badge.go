// Package badge generates staff badge credentials: the printable display
// code and the secret token the badge QR image encodes.
package badge

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/pkg/cryptox"
	"github.com/aussiebroadwan/clockin/pkg/idx"
	"github.com/skip2/go-qrcode"
)

const (
	codePrefix = "NKYM"

	// TokenBytes is the entropy of a badge token; hex encoded it is 64
	// characters.
	TokenBytes = cryptox.TokenSize256

	// DefaultImageSize is the badge PNG edge in pixels.
	DefaultImageSize = 256
)

var codePattern = regexp.MustCompile(`(?i)^NKYM-[a-z0-9]+-[A-Z0-9]+-[a-z0-9]+$`)

// NewQRPair mints a fresh display code and secret token for userID.
func NewQRPair(userID idx.ID, now time.Time) (domain.QRPair, error) {
	random, err := cryptox.GenerateCode(6)
	if err != nil {
		return domain.QRPair{}, err
	}
	token, err := cryptox.GenerateHexToken(TokenBytes)
	if err != nil {
		return domain.QRPair{}, err
	}

	code := fmt.Sprintf("%s-%s-%s-%s",
		codePrefix,
		strconv.FormatInt(now.UnixMilli(), 36),
		random,
		userID.Short(8),
	)
	return domain.QRPair{Code: code, Token: token}, nil
}

// ValidCode reports whether code has the display code shape.
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}

// ValidToken reports whether token could be a badge token.
func ValidToken(token string) bool {
	return cryptox.IsHexToken(token, TokenBytes)
}

// PNG renders token as a QR code image.
func PNG(token string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultImageSize
	}
	png, err := qrcode.Encode(token, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode badge: %w", err)
	}
	return png, nil
}
