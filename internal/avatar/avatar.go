// Package avatar renders deterministic fallback profile pictures. The same
// seed always produces byte-identical output, so generated avatars are
// reproducible and cheap to regenerate.
package avatar

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"crypto/md5"
)

// MIMEType of every generated image.
const MIMEType = "image/svg+xml"

const (
	saturation = 0.65
	lightness  = 0.55
)

// 256x256 rounded rect with a diagonal two-stop gradient and a single
// centered glyph. Substituted: color one, color two, initial.
const svgTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="256" height="256" viewBox="0 0 256 256">
  <defs>
    <linearGradient id="bg" x1="0" y1="0" x2="256" y2="256" gradientUnits="userSpaceOnUse">
      <stop offset="0" stop-color="%s"/>
      <stop offset="1" stop-color="%s"/>
    </linearGradient>
  </defs>
  <rect width="256" height="256" rx="48" fill="url(#bg)"/>
  <text x="128" y="172" text-anchor="middle" font-family="Arial, Helvetica, sans-serif" font-size="128" font-weight="600" fill="#ffffff" fill-opacity="0.95">%s</text>
</svg>
`

// Avatar is a rendered identity image ready to be persisted.
type Avatar struct {
	Bytes    []byte
	Filename string
	MIMEType string
}

// Generate derives a two-color gradient avatar from the seed (normally the
// username). The gradient hues come from disjoint halves of the seed's MD5
// digest, so distinct seeds disperse well across the color wheel. The glyph is
// the first character of initialHint, falling back to 'U'.
func Generate(seed, initialHint string) (*Avatar, error) {
	if strings.TrimSpace(seed) == "" {
		return nil, errors.New("avatar: seed cannot be empty")
	}

	sum := md5.Sum([]byte(seed))
	digest := fmt.Sprintf("%x", sum)

	hue1, err := hueFromHex(digest[:8])
	if err != nil {
		return nil, err
	}

	hue2, err := hueFromHex(digest[24:])
	if err != nil {
		return nil, err
	}

	color1 := hslToHex(hue1, saturation, lightness)
	color2 := hslToHex(hue2, saturation, lightness)

	svg := fmt.Sprintf(svgTemplate, color1, color2, initial(initialHint))
	return &Avatar{
		Bytes:    []byte(svg),
		Filename: seed + "_avatar.svg",
		MIMEType: MIMEType,
	}, nil
}

func hueFromHex(hexSlice string) (float64, error) {
	v, err := strconv.ParseUint(hexSlice, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("avatar: bad digest slice %q: %w", hexSlice, err)
	}
	return float64(v % 360), nil
}

func initial(hint string) string {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return "U"
	}
	runes := []rune(hint)
	return strings.ToUpper(string(runes[0]))
}

// hslToHex converts an HSL triple (h in degrees, s and l in [0,1]) to an sRGB
// hex color using the standard conversion.
func hslToHex(h, s, l float64) string {
	c := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	m := l - c/2
	return fmt.Sprintf("#%02x%02x%02x", channel(r+m), channel(g+m), channel(b+m))
}

func channel(v float64) uint8 {
	return uint8(math.Round(v * 255))
}
