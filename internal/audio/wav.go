// Package audio provides the WAV framing used when shipping captured
// microphone audio to the transcription service.
package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	wavNumChannels   = 1
	wavBitsPerSample = 16
	wavFormatPCM     = 1
)

// EncodeWAVPCM16LE wraps raw PCM16LE mono samples in a WAV container.
func EncodeWAVPCM16LE(pcm []byte, sampleRate int) ([]byte, error) {
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	if len(pcm)%2 != 0 {
		return nil, fmt.Errorf("pcm16 payload has odd length %d", len(pcm))
	}

	dataSize := uint32(len(pcm))
	byteRate := uint32(sampleRate * wavNumChannels * wavBitsPerSample / 8)
	blockAlign := uint16(wavNumChannels * wavBitsPerSample / 8)

	buf := bytes.NewBuffer(make([]byte, 0, 44+len(pcm)))
	buf.WriteString("RIFF")
	writeLE(buf, uint32(36)+dataSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	writeLE(buf, uint32(16))
	writeLE(buf, uint16(wavFormatPCM))
	writeLE(buf, uint16(wavNumChannels))
	writeLE(buf, uint32(sampleRate))
	writeLE(buf, byteRate)
	writeLE(buf, blockAlign)
	writeLE(buf, uint16(wavBitsPerSample))

	buf.WriteString("data")
	writeLE(buf, dataSize)
	buf.Write(pcm)
	return buf.Bytes(), nil
}

func writeLE(buf *bytes.Buffer, v any) {
	// bytes.Buffer writes never fail.
	_ = binary.Write(buf, binary.LittleEndian, v)
}
