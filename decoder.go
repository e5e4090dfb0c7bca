package atrac3

import (
	"fmt"
	"io"
	"os"

	"github.com/llehouerou/go-atrac3/internal/a3"
	"github.com/llehouerou/go-atrac3/internal/a3plus"
	"github.com/llehouerou/go-atrac3/internal/container"
)

// CodecType identifies which frame decoder a stream uses.
type CodecType int

const (
	CodecUnknown CodecType = iota
	CodecATRAC3
	CodecATRAC3Plus
)

// AllocationCallbacks mirrors spec §6's optional allocator hooks. Go has
// no custom-allocator hook point: the decoder stores these fields but
// never calls OnAlloc or OnFree, and every buffer comes from the Go
// allocator whether or not they are set (see DESIGN.md).
type AllocationCallbacks struct {
	OnAlloc func(size int) []byte
	OnFree  func(buf []byte)
}

// Config configures a Decoder (spec §6 "Configuration").
type Config struct {
	Allocation AllocationCallbacks
}

// ContainerInfo is the full immutable container descriptor (spec §9
// "supplemented GetContainerInfo accessor"): everything the distilled
// streaming table's three fields leave out.
type ContainerInfo struct {
	Codec       CodecType
	Channels    int
	SampleRate  int
	BlockAlign  int
	BitRate     int
	JointStereo bool
	Scrambled   bool
}

// memorySource adapts an in-memory byte slice to container.Source. The
// caller's slice must outlive the Decoder (spec §5 "Ownership").
type memorySource struct {
	data []byte
}

func (m *memorySource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("atrac3: negative read offset")
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *memorySource) Size() int64 { return int64(len(m.data)) }

// fileSource adapts an *os.File to container.Source.
type fileSource struct {
	f    *os.File
	size int64
}

func (s *fileSource) ReadAt(p []byte, off int64) (int, error) { return s.f.ReadAt(p, off) }
func (s *fileSource) Size() int64                             { return s.size }

// Decoder is the streaming ATRAC3/ATRAC3+ decoder (spec §4.7, §6).
//
// A Decoder is not safe for concurrent use by multiple goroutines (spec
// §5): callers needing parallelism run independent instances.
type Decoder struct {
	config Config

	cr   *container.Reader
	file *os.File

	codec CodecType
	a3dec *a3.Decoder
	a3p   *a3plus.Decoder

	interleave []float32
	leftover   int
	leftOff    int
	cursor     int64
}

func samplesPerFrame(c CodecType) int {
	if c == CodecATRAC3Plus {
		return a3plus.SamplesPerFrame
	}
	return a3.SamplesPerFrame
}

// InitFile opens path and parses its container header (spec §6
// "init_file"). Returns ErrInvalidFile on a missing or malformed
// container.
func InitFile(path string, cfg Config) (*Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrInvalidFile
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ErrInvalidFile
	}
	d, err := newFromSource(&fileSource{f: f, size: fi.Size()}, cfg)
	if err != nil {
		f.Close()
		return nil, err
	}
	d.file = f
	return d, nil
}

// InitMemory parses a container header directly from data, which must
// outlive the Decoder (spec §6 "init_memory", §5 "Ownership"). Returns
// ErrInvalidFile on a buffer shorter than 12 bytes or a malformed
// container (spec §8 "Boundary behaviours").
func InitMemory(data []byte, cfg Config) (*Decoder, error) {
	if len(data) < 12 {
		return nil, ErrInvalidFile
	}
	return newFromSource(&memorySource{data: data}, cfg)
}

func newFromSource(src container.Source, cfg Config) (*Decoder, error) {
	cr, err := container.Open(src)
	if err != nil {
		return nil, ErrInvalidFile
	}

	d := &Decoder{config: cfg, cr: cr}
	switch cr.Info.Codec {
	case container.CodecATRAC3:
		d.codec = CodecATRAC3
		codingMode := 0
		if cr.Info.JointStereo {
			codingMode = 0x12
		}
		d.a3dec = a3.NewDecoder(cr.Info.Channels, codingMode, cr.Info.Scrambled)
	case container.CodecATRAC3Plus:
		d.codec = CodecATRAC3Plus
		d.a3p = a3plus.NewDecoder(cr.Info.Channels)
	default:
		return nil, ErrInvalidFile
	}

	d.interleave = make([]float32, samplesPerFrame(d.codec)*cr.Info.Channels)
	return d, nil
}

// GetContainerInfo returns the parsed container descriptor (spec §9).
func (d *Decoder) GetContainerInfo() ContainerInfo {
	return ContainerInfo{
		Codec:       d.codec,
		Channels:    d.cr.Info.Channels,
		SampleRate:  d.cr.Info.SampleRate,
		BlockAlign:  d.cr.Info.BlockAlign,
		BitRate:     d.cr.Info.BitRate,
		JointStereo: d.cr.Info.JointStereo,
		Scrambled:   d.cr.Info.Scrambled,
	}
}

// Channels returns the stream's channel count.
func (d *Decoder) Channels() int { return d.cr.Info.Channels }

// SampleRate returns the stream's sample rate in Hz.
func (d *Decoder) SampleRate() int { return d.cr.Info.SampleRate }

// GetLengthInPCMFrames returns the total decodable PCM frame count.
func (d *Decoder) GetLengthInPCMFrames() int64 {
	return d.cr.TotalFrames() * int64(samplesPerFrame(d.codec))
}

// GetCursorInPCMFrames returns the current PCM-frame read cursor.
func (d *Decoder) GetCursorInPCMFrames() int64 { return d.cursor }

// Uninit releases all resources owned by the decoder (spec §6 "uninit").
func (d *Decoder) Uninit() error {
	if d.file != nil {
		err := d.file.Close()
		d.file = nil
		return err
	}
	return nil
}

// decodeOneFrame reads and decodes one container frame into
// d.interleave. atEOF reports genuine end of stream (no more container
// frames); a false, zero-sample result means the frame was consumed but
// its decode failed (spec §7) — the caller should loop and try the next
// frame rather than stop.
func (d *Decoder) decodeOneFrame() (samples int, atEOF bool, err error) {
	frameSize := d.cr.Info.BlockAlign
	buf := make([]byte, frameSize)
	n, readErr := d.cr.ReadFrame(buf)
	if readErr != nil {
		return 0, false, readErr
	}
	if n == 0 {
		return 0, true, nil
	}

	var decErr error
	switch d.codec {
	case CodecATRAC3:
		decErr = d.a3dec.DecodeFrame(buf, d.interleave)
	case CodecATRAC3Plus:
		decErr = d.a3p.DecodeFrame(buf, d.interleave)
	}
	if decErr != nil {
		// Per spec §7, a bitstream-grammar error discards this frame's
		// output without poisoning the decoder; the caller's next read
		// attempts the following frame (the container cursor has already
		// advanced past this frame via ReadFrame above).
		return 0, false, nil
	}
	return samplesPerFrame(d.codec), false, nil
}
