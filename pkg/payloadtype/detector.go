package payloadtype

import (
	"bytes"
)

// PayloadType represents the detected type of an extracted payload
type PayloadType string

const (
	PayloadTypeEmpty  PayloadType = "empty"
	PayloadTypeBinary PayloadType = "binary"
	PayloadTypeText   PayloadType = "text"
	PayloadTypeMP3    PayloadType = "mp3"
	PayloadTypeOgg    PayloadType = "ogg"
	PayloadTypeWAV    PayloadType = "wav"
	PayloadTypeFLAC   PayloadType = "flac"
)

// maxScan limits how far into the payload a frame sync is searched for.
// Dumps are often started mid-stream, so the first frame is rarely at offset 0.
const maxScan = 8192

// Detect classifies data by its leading bytes. The result is informational
// only; nothing is rejected based on it.
func Detect(data []byte) (PayloadType, string) {
	if len(data) == 0 {
		return PayloadTypeEmpty, "no bytes extracted"
	}

	switch {
	case bytes.HasPrefix(data, []byte("ID3")):
		return PayloadTypeMP3, "ID3 tag at offset 0"
	case bytes.HasPrefix(data, []byte("OggS")):
		return PayloadTypeOgg, "OggS capture pattern at offset 0"
	case bytes.HasPrefix(data, []byte("fLaC")):
		return PayloadTypeFLAC, "fLaC marker at offset 0"
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return PayloadTypeWAV, "RIFF/WAVE header at offset 0"
	}

	if offset, ok := findFrameSync(data); ok {
		if offset == 0 {
			return PayloadTypeMP3, "MPEG audio frame header at offset 0"
		}
		return PayloadTypeMP3, "MPEG audio frame header found after skipping leading bytes"
	}

	if isBinaryData(data) {
		return PayloadTypeBinary, "null bytes or high proportion of non-printable characters detected"
	}
	return PayloadTypeText, "mostly printable characters"
}

// findFrameSync returns the offset of the first plausible MPEG audio frame
// header within the first maxScan bytes.
func findFrameSync(data []byte) (int, bool) {
	limit := len(data) - 4
	if limit > maxScan {
		limit = maxScan
	}
	for i := 0; i <= limit; i++ {
		if isFrameHeader(data[i : i+4]) {
			return i, true
		}
	}
	return 0, false
}

// isFrameHeader checks the 11 sync bits and rejects reserved values for
// version, layer, bitrate and sample rate.
func isFrameHeader(h []byte) bool {
	if h[0] != 0xFF || h[1]&0xE0 != 0xE0 {
		return false
	}
	version := (h[1] >> 3) & 0x03
	layer := (h[1] >> 1) & 0x03
	bitrate := h[2] >> 4
	sampleRate := (h[2] >> 2) & 0x03
	return version != 0x01 && layer != 0x00 && bitrate != 0x0F && bitrate != 0x00 && sampleRate != 0x03
}

// isBinaryData checks if data contains binary content
func isBinaryData(data []byte) bool {
	if len(data) > maxScan {
		data = data[:maxScan]
	}

	nonPrintableCount := 0
	for _, b := range data {
		// Null bytes are a definitive indicator of binary data
		if b == 0 {
			return true
		}
		if b < 32 && b != '\t' && b != '\n' && b != '\r' {
			nonPrintableCount++
		} else if b > 126 {
			nonPrintableCount++
		}
	}

	// If more than 30% of bytes are non-printable, consider it binary
	threshold := float64(len(data)) * 0.3
	return float64(nonPrintableCount) > threshold
}
