// Package kittyimg provides Kitty terminal graphics protocol support.
package kittyimg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

const (
	chunkSize = 4096 // Max bytes per escape sequence chunk

	// imageID is reused for every frame so each transmit replaces the
	// previous picture instead of stacking a new one.
	imageID = 1
)

// Encode converts an image to a Kitty graphics protocol escape sequence.
// The image will be displayed at the specified column and row dimensions.
// Returns empty string if img is nil or cannot be encoded.
func Encode(img image.Image, cols, rows int) string {
	if img == nil || img.Bounds().Empty() {
		return ""
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return ""
	}

	b64Data := base64.StdEncoding.EncodeToString(buf.Bytes())

	// Format: ESC _ G <params> ; <payload> ESC \
	// a=T (transmit+display), f=100 (PNG), i=id, q=2 (no replies), c=cols, r=rows
	var sb strings.Builder
	for i := 0; i < len(b64Data); i += chunkSize {
		end := min(i+chunkSize, len(b64Data))
		chunk := b64Data[i:end]

		// m=1 means more chunks follow, m=0 means last chunk
		more := 0
		if end < len(b64Data) {
			more = 1
		}

		if i == 0 {
			fmt.Fprintf(&sb, "\x1b_Ga=T,f=100,i=%d,q=2,c=%d,r=%d,m=%d;%s\x1b\\",
				imageID, cols, rows, more, chunk)
		} else {
			fmt.Fprintf(&sb, "\x1b_Gm=%d;%s\x1b\\", more, chunk)
		}
	}

	return sb.String()
}

// Delete returns the escape sequence removing the displayed frame.
func Delete() string {
	return fmt.Sprintf("\x1b_Ga=d,d=I,i=%d,q=2\x1b\\", imageID)
}

// Placeholder returns an ASCII placeholder shown until the first frame.
func Placeholder(cols, rows int, label string) string {
	if cols < 4 || rows < 2 {
		return ""
	}

	var lines []string
	lines = append(lines, "┌"+strings.Repeat("─", cols-2)+"┐")

	inner := cols - 2
	for i := 1; i < rows-1; i++ {
		if i == rows/2 && label != "" && len([]rune(label)) <= inner {
			n := len([]rune(label))
			left := (inner - n) / 2
			lines = append(lines, "│"+strings.Repeat(" ", left)+label+strings.Repeat(" ", inner-n-left)+"│")
			continue
		}
		lines = append(lines, "│"+strings.Repeat(" ", inner)+"│")
	}

	lines = append(lines, "└"+strings.Repeat("─", cols-2)+"┘")

	return strings.Join(lines, "\n")
}
