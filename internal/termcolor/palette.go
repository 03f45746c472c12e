package termcolor

import (
	"math"

	"github.com/phyten/backrefx/internal/colorutil"
	"github.com/phyten/backrefx/internal/model"
)

var (
	darkBackground  = colorutil.RGB{R: 17, G: 24, B: 39}
	lightBackground = colorutil.RGB{R: 249, G: 250, B: 251}
)

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

// StatusStyle colors the status column: green for accepted, red for
// rejected. Truecolor values are kept at a 4.5:1 contrast against the
// scheme background.
func StatusStyle(status model.Status, scheme Scheme, profile Profile) Style {
	var (
		basic int
		rgb   colorutil.RGB
		idx   int
	)
	switch status {
	case model.StatusAccepted:
		basic = 2
		if scheme == SchemeLight {
			rgb, idx = colorutil.RGB{R: 21, G: 128, B: 61}, 28
		} else {
			rgb, idx = colorutil.RGB{R: 74, G: 222, B: 128}, 77
		}
	case model.StatusRejected:
		basic = 1
		if scheme == SchemeLight {
			rgb, idx = colorutil.RGB{R: 185, G: 28, B: 28}, 124
		} else {
			rgb, idx = colorutil.RGB{R: 248, G: 113, B: 113}, 203
		}
	default:
		return Style{}
	}
	switch profile {
	case ProfileTrueColor:
		bg := darkBackground
		if scheme == SchemeLight {
			bg = lightBackground
		}
		fg := colorutil.EnsureContrast(rgb, bg, 4.5)
		return TrueColor(fg.R, fg.G, fg.B)
	case ProfileANSI256:
		return ANSI256(idx)
	default:
		s := Basic(basic)
		s.Bold = scheme != SchemeLight
		return s
	}
}

// TokenStyle highlights backreference tokens such as \1.
func TokenStyle() Style {
	return Basic(6)
}

// CountStyle shades a backreference count from green (few) to red (many).
func CountStyle(n int, profile Profile, maxCount float64) Style {
	if n < 0 {
		n = 0
	}
	switch profile {
	case ProfileTrueColor:
		return TrueColor(gradientRGB(n, maxCount))
	case ProfileANSI256:
		return ANSI256(rgbToANSI256(gradientRGB(n, maxCount)))
	default:
		return Basic(countBucketColor(n))
	}
}

func gradientRGB(n int, maxCount float64) (uint8, uint8, uint8) {
	if maxCount <= 0 {
		maxCount = 9
	}
	t := float64(n) / maxCount
	if t <= 0 {
		return 0, 255, 0
	}
	if t >= 1 {
		return 255, 0, 0
	}
	if t < 0.5 {
		ratio := t / 0.5
		r := uint8(math.Round(255 * ratio))
		return r, 255, 0
	}
	ratio := (t - 0.5) / 0.5
	g := uint8(math.Round(255 * (1 - ratio)))
	return 255, g, 0
}

func countBucketColor(n int) int {
	switch {
	case n <= 1:
		return 2
	case n <= 2:
		return 3
	case n <= 4:
		return 5
	default:
		return 1
	}
}

func rgbToANSI256(r, g, b uint8) int {
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 248 {
			return 231
		}
		return 232 + (int(r)-8)*24/247
	}
	rr := int(r) * 5 / 255
	gg := int(g) * 5 / 255
	bb := int(b) * 5 / 255
	return 16 + 36*rr + 6*gg + bb
}
