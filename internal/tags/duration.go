package tags

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	goflac "github.com/go-flac/go-flac"
	"github.com/llehouerou/go-m4a"
	"github.com/llehouerou/go-mp3"
)

// ErrUnknownDuration is returned when a file's stream headers give no length.
var ErrUnknownDuration = errors.New("could not determine duration")

// ReadDuration reads the stream length from container or frame headers
// without decoding audio.
func ReadDuration(path string) (time.Duration, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsMusicFile(path) {
		return 0, fmt.Errorf("unsupported format: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	switch ext {
	case ExtMP3:
		return mp3Duration(f)
	case ExtFLAC:
		return flacDuration(f)
	case ExtOPUS, ExtOGG, ExtOGA:
		return oggDuration(f)
	default:
		return m4aDuration(f)
	}
}

func mp3Duration(f *os.File) (time.Duration, error) {
	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return 0, err
	}
	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return 0, errors.New("mp3: invalid sample rate")
	}
	samples := max(decoder.SampleCount(), 0)
	return samplesToDuration(int64(samples), int64(sampleRate)), nil
}

// flacDuration reads the STREAMINFO block: sample rate is the 20 bits from
// byte 10, total samples the 36 bits ending at byte 17. Only the metadata
// blocks are parsed, so header-only and truncated files still work.
func flacDuration(f *os.File) (d time.Duration, err error) {
	defer func() {
		if r := recover(); r != nil {
			d, err = 0, fmt.Errorf("flac: malformed metadata: %v", r)
		}
	}()

	file, err := goflac.ParseMetadata(f)
	if err != nil {
		return 0, err
	}
	for _, meta := range file.Meta {
		if meta.Type != goflac.StreamInfo || len(meta.Data) < 18 {
			continue
		}
		data := meta.Data
		sampleRate := int64(data[10])<<12 | int64(data[11])<<4 | int64(data[12])>>4
		total := int64(data[13]&0x0F)<<32 | int64(binary.BigEndian.Uint32(data[14:18]))
		if sampleRate == 0 || total == 0 {
			return 0, ErrUnknownDuration
		}
		return samplesToDuration(total, sampleRate), nil
	}
	return 0, ErrUnknownDuration
}

func m4aDuration(f *os.File) (time.Duration, error) {
	container, err := m4a.Open(f)
	if err != nil {
		return 0, err
	}
	if d := container.Duration(); d > 0 {
		return d, nil
	}
	return 0, ErrUnknownDuration
}

const (
	oggHeadScan  = 4096
	oggTailScan  = 65536
	oggPageMagic = "OggS"
	opusRate     = 48000
)

var (
	opusHead   = []byte("OpusHead")
	vorbisHead = []byte("\x01vorbis")
)

// oggDuration divides the granule position of the last page by the stream
// sample rate. Opus granules run at 48 kHz and include the pre-skip; Vorbis
// granules run at the rate of the identification header.
func oggDuration(f *os.File) (time.Duration, error) {
	head := make([]byte, oggHeadScan)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, err
	}
	head = head[:n]

	var rate, preSkip int64
	if i := bytes.Index(head, opusHead); i >= 0 && i+12 <= len(head) {
		rate = opusRate
		preSkip = int64(binary.LittleEndian.Uint16(head[i+10 : i+12]))
	} else if i := bytes.Index(head, vorbisHead); i >= 0 && i+16 <= len(head) {
		rate = int64(binary.LittleEndian.Uint32(head[i+12 : i+16]))
	}
	if rate == 0 {
		return 0, ErrUnknownDuration
	}

	granule, err := lastGranule(f)
	if err != nil {
		return 0, err
	}
	if granule <= preSkip {
		return 0, ErrUnknownDuration
	}
	return samplesToDuration(granule-preSkip, rate), nil
}

// lastGranule scans the file tail backwards for the last Ogg page header.
// The granule position is the little-endian int64 at offset 6.
func lastGranule(f *os.File) (int64, error) {
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}
	size := min(int64(oggTailScan), fi.Size())
	buf := make([]byte, size)
	if _, err := f.ReadAt(buf, fi.Size()-size); err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	for i := len(buf) - 27; i >= 0; i-- {
		if string(buf[i:i+4]) == oggPageMagic {
			return int64(binary.LittleEndian.Uint64(buf[i+6 : i+14])), nil
		}
	}
	return 0, ErrUnknownDuration
}

func samplesToDuration(samples, rate int64) time.Duration {
	return time.Duration(samples) * time.Second / time.Duration(rate)
}
