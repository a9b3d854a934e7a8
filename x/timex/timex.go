package timex

import (
	"fmt"
	"time"
)

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// FormatMMSS renders whole seconds as zero-padded MM:SS.
// Minutes are not clamped; beyond 99 the field simply widens.
func FormatMMSS(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}
