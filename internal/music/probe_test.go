package music

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

// wavFile builds a minimal PCM wav with the given audio payload seconds at
// the given byte rate.
func wavFile(byteRate uint32, seconds int) []byte {
	dataSize := byteRate * uint32(seconds)

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))  // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1))  // mono
	binary.Write(&buf, binary.LittleEndian, byteRate/2) // sample rate
	binary.Write(&buf, binary.LittleEndian, byteRate)
	binary.Write(&buf, binary.LittleEndian, uint16(2))  // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16)) // bits per sample

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	buf.Write(make([]byte, dataSize))

	return buf.Bytes()
}

func TestFileProberWavDuration(t *testing.T) {
	prober := FileProber{}
	file := wavFile(8000, 90)

	duration, err := prober.Duration(context.Background(), "track.wav", bytes.NewReader(file))
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if got := duration.Round(time.Second); got != 90*time.Second {
		t.Fatalf("expected 90s, got %s", got)
	}
}

func TestFileProberRejectsUnknownExtension(t *testing.T) {
	prober := FileProber{}
	_, err := prober.Duration(context.Background(), "track.ogg", bytes.NewReader([]byte("x")))
	if !errors.Is(err, ErrUnsupportedAudio) {
		t.Fatalf("expected unsupported, got %v", err)
	}
}

func TestFileProberRejectsGarbage(t *testing.T) {
	prober := FileProber{}

	if _, err := prober.Duration(context.Background(), "track.wav", bytes.NewReader([]byte("not a wav"))); !errors.Is(err, ErrUnreadableAudio) {
		t.Fatalf("expected unreadable wav, got %v", err)
	}
	if _, err := prober.Duration(context.Background(), "track.mp3", bytes.NewReader(bytes.Repeat([]byte{0x00}, 128))); !errors.Is(err, ErrUnreadableAudio) {
		t.Fatalf("expected unreadable mp3, got %v", err)
	}
}

func TestFileProberHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prober := FileProber{}
	if _, err := prober.Duration(ctx, "track.wav", bytes.NewReader(nil)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
