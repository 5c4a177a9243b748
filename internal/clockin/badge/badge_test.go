package badge

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/clockin/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewQRPair(t *testing.T) {
	t.Parallel()

	id := idx.New()
	now := time.UnixMilli(1_700_000_000_000)

	pair, err := NewQRPair(id, now)
	require.NoError(t, err)

	require.True(t, ValidCode(pair.Code), pair.Code)
	require.True(t, strings.HasPrefix(pair.Code, "NKYM-loyw3v28-"), pair.Code)
	require.True(t, strings.HasSuffix(pair.Code, "-"+id.Short(8)))

	require.Len(t, pair.Token, 64)
	require.True(t, ValidToken(pair.Token))
	require.Equal(t, strings.ToLower(pair.Token), pair.Token)

	other, err := NewQRPair(id, now)
	require.NoError(t, err)
	require.NotEqual(t, pair.Token, other.Token)
}

func TestValidCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want bool
	}{
		{"NKYM-lq2x9k-AB12CD-01hzx3k8", true},
		{"nkym-lq2x9k-ab12cd-01hzx3k8", true},
		{"NKYM-lq2x9k-AB12CD", false},
		{"ABCD-lq2x9k-AB12CD-01hzx3k8", false},
		{"NKYM-lq2x9k-AB 12CD-01hzx3k8", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			require.Equal(t, tt.want, ValidCode(tt.code))
		})
	}
}

func TestPNG(t *testing.T) {
	t.Parallel()

	data, err := PNG(strings.Repeat("ab", 32), 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, DefaultImageSize, img.Bounds().Dx())
}
