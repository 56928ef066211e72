package logger

import (
	"unicode/utf8"

	"go.uber.org/zap"
)

// PreviewLimit is the number of bytes of a payload kept in debug logs.
const PreviewLimit = 512

// Payload logs the size and a truncated preview of a raw payload.
func Payload(data []byte) zap.Field {
	return zap.Dict("payload",
		zap.Int("bytes", len(data)),
		zap.String("preview", preview(data, PreviewLimit)),
	)
}

func preview(data []byte, limit int) string {
	if len(data) <= limit {
		return string(data)
	}
	cut := data[:limit]
	// drop the tail of a rune split by the cut; a rune is at most 4 bytes
	for i := 0; i < utf8.UTFMax-1 && len(cut) > 0; i++ {
		r, size := utf8.DecodeLastRune(cut)
		if r != utf8.RuneError || size != 1 {
			break
		}
		cut = cut[:len(cut)-1]
	}
	return string(cut) + "…"
}
