// Package display discovers the startup window size.
package display

import (
	"fmt"
	"log/slog"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Fallback size used when neither the config nor the X server provide one.
const (
	FallbackWidth  = 1280
	FallbackHeight = 720
)

// Prober reports the size of the default screen.
type Prober func() (width, height int, err error)

// ScreenSize asks the X server for the size of its default screen.
func ScreenSize() (int, int, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return 0, 0, fmt.Errorf("connecting to X server: %w", err)
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	return int(screen.WidthInPixels), int(screen.HeightInPixels), nil
}

// Resolve picks the window size. A configured size wins when both sides are
// positive; otherwise probe is asked, and the fallback is used if it fails.
func Resolve(width, height int, probe Prober) (int, int) {
	if width > 0 && height > 0 {
		return width, height
	}
	if probe != nil {
		w, h, err := probe()
		if err == nil && w > 0 && h > 0 {
			return w, h
		}
		if err != nil {
			slog.Warn("screen size unavailable, using fallback", "error", err)
		}
	}
	return FallbackWidth, FallbackHeight
}
