package music

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/tcolgate/mp3"
)

var (
	// ErrUnsupportedAudio indicates the file extension maps to no known
	// decoder.
	ErrUnsupportedAudio = errors.New("unsupported audio format")
	// ErrUnreadableAudio indicates the bytes could not be decoded as the
	// format the name promised.
	ErrUnreadableAudio = errors.New("unreadable audio file")
)

// Prober decodes the playable duration of an uploaded audio file. Uploads
// are validated against the minimum-length policy using this duration, not
// whatever the client claims.
type Prober interface {
	Duration(ctx context.Context, name string, r io.Reader) (time.Duration, error)
}

// FileProber probes MP3 files by walking their frames and WAV files from
// the format header.
type FileProber struct{}

// Duration dispatches on the file extension.
func (FileProber) Duration(ctx context.Context, name string, r io.Reader) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".mp3":
		return mp3Duration(r)
	case ".wav":
		return wavDuration(r)
	default:
		return 0, fmt.Errorf("%s: %w", name, ErrUnsupportedAudio)
	}
}

func mp3Duration(r io.Reader) (time.Duration, error) {
	decoder := mp3.NewDecoder(r)

	var (
		frame   mp3.Frame
		skipped int
		total   time.Duration
		decoded bool
	)
	for {
		err := decoder.Decode(&frame, &skipped)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if decoded {
				// tolerate trailing junk after valid frames
				break
			}
			return 0, fmt.Errorf("decode mp3 frame: %w", ErrUnreadableAudio)
		}
		decoded = true
		total += frame.Duration()
	}

	if !decoded {
		return 0, fmt.Errorf("no mp3 frames found: %w", ErrUnreadableAudio)
	}
	return total, nil
}

// wavDuration walks the RIFF chunks for the byte rate and data length.
func wavDuration(r io.Reader) (time.Duration, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return 0, fmt.Errorf("read riff header: %w", ErrUnreadableAudio)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return 0, fmt.Errorf("not a wav file: %w", ErrUnreadableAudio)
	}

	var (
		byteRate uint32
		dataSize uint32
	)
	for {
		var header [8]byte
		if _, err := io.ReadFull(r, header[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return 0, fmt.Errorf("read chunk header: %w", ErrUnreadableAudio)
		}

		chunkID := string(header[0:4])
		chunkSize := binary.LittleEndian.Uint32(header[4:8])

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return 0, fmt.Errorf("short fmt chunk: %w", ErrUnreadableAudio)
			}
			var format [16]byte
			if _, err := io.ReadFull(r, format[:]); err != nil {
				return 0, fmt.Errorf("read fmt chunk: %w", ErrUnreadableAudio)
			}
			byteRate = binary.LittleEndian.Uint32(format[8:12])
			if err := discard(r, int64(chunkSize)-16); err != nil {
				return 0, err
			}
		case "data":
			dataSize = chunkSize
			if err := discard(r, int64(chunkSize)); err != nil {
				return 0, err
			}
		default:
			if err := discard(r, int64(chunkSize)); err != nil {
				return 0, err
			}
		}

		// chunks are word-aligned
		if chunkSize%2 == 1 {
			if err := discard(r, 1); err != nil {
				return 0, err
			}
		}

		if byteRate > 0 && dataSize > 0 {
			break
		}
	}

	if byteRate == 0 || dataSize == 0 {
		return 0, fmt.Errorf("missing fmt or data chunk: %w", ErrUnreadableAudio)
	}

	seconds := float64(dataSize) / float64(byteRate)
	return time.Duration(seconds * float64(time.Second)), nil
}

func discard(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("skip chunk: %w", ErrUnreadableAudio)
	}
	return nil
}
