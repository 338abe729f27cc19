package http

import (
	"fmt"
	"time"
)

// formatUptime renders d as HH:MM:SS.mmm. Hours keep counting past a day.
func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	hours := ms / 3_600_000
	minutes := ms / 60_000 % 60
	seconds := ms / 1000 % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, ms%1000)
}

// formatMegabytes renders a byte count in MiB with two decimals.
func formatMegabytes(bytes uint64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}
