package output

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/multierr"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// Raw framebuffer layout:
//
//	"RTRF" | version u8 | codec u8 | 2 reserved bytes      (uncompressed)
//	width u32 | height u32 | width*height RGB float32 rows  (compressed, little endian)
const (
	rawMagic   = "RTRF"
	rawVersion = 1

	codecZstd   = 1
	codecSnappy = 2

	// maxRawPixels bounds the allocation made for a header read from disk
	maxRawPixels = 1 << 28
)

// ErrInvalidRaw is returned when a stream is not a raw framebuffer
var ErrInvalidRaw = errors.New("invalid raw framebuffer")

// RawFrame is a decoded linear framebuffer
type RawFrame struct {
	Width, Height int
	Pixels        []core.Vec3 // row-major, row 0 at the top
}

// At returns the radiance of pixel (x, y)
func (f *RawFrame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// WriteRaw writes the frame's averaged linear radiance as compressed float32 triples
func WriteRaw(w io.Writer, frame *renderer.Frame, compression Compression) (err error) {
	var codec byte
	var body io.WriteCloser
	switch compression {
	case CompressionZstd, "":
		codec = codecZstd
	case CompressionSnappy:
		codec = codecSnappy
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCompression, compression)
	}

	header := []byte{rawMagic[0], rawMagic[1], rawMagic[2], rawMagic[3], rawVersion, codec, 0, 0}
	if _, err := w.Write(header); err != nil {
		return err
	}

	if codec == codecZstd {
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		body = enc
	} else {
		body = snappy.NewBufferedWriter(w)
	}
	// Close flushes the codec; it does not close w
	defer multierr.AppendInvoke(&err, multierr.Close(body))

	dims := [2]uint32{uint32(frame.Width), uint32(frame.Height)}
	if err := binary.Write(body, binary.LittleEndian, dims); err != nil {
		return err
	}

	row := make([]float32, 3*frame.Width)
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			c := frame.LinearAt(x, y)
			row[3*x], row[3*x+1], row[3*x+2] = float32(c.X), float32(c.Y), float32(c.Z)
		}
		if err := binary.Write(body, binary.LittleEndian, row); err != nil {
			return err
		}
	}
	return nil
}

// ReadRaw decodes a framebuffer written by WriteRaw, detecting the codec from the header
func ReadRaw(r io.Reader) (*RawFrame, error) {
	header := make([]byte, 8)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRaw, err)
	}
	if string(header[:4]) != rawMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalidRaw, header[:4])
	}
	if header[4] != rawVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidRaw, header[4])
	}

	var body io.Reader
	switch header[5] {
	case codecZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		body = dec
	case codecSnappy:
		body = snappy.NewReader(r)
	default:
		return nil, fmt.Errorf("%w: unknown codec %d", ErrInvalidRaw, header[5])
	}

	var dims [2]uint32
	if err := binary.Read(body, binary.LittleEndian, &dims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRaw, err)
	}
	width, height := int(dims[0]), int(dims[1])
	if width == 0 || height == 0 || uint64(width)*uint64(height) > maxRawPixels {
		return nil, fmt.Errorf("%w: bad size %dx%d", ErrInvalidRaw, width, height)
	}

	values := make([]float32, 3*width*height)
	if err := binary.Read(body, binary.LittleEndian, values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRaw, err)
	}

	pixels := make([]core.Vec3, width*height)
	for i := range pixels {
		pixels[i] = core.NewVec3(float64(values[3*i]), float64(values[3*i+1]), float64(values[3*i+2]))
	}
	return &RawFrame{Width: width, Height: height, Pixels: pixels}, nil
}

// MaxValue returns the brightest channel value in the frame
func (f *RawFrame) MaxValue() float64 {
	m := 0.0
	for _, p := range f.Pixels {
		m = math.Max(m, math.Max(p.X, math.Max(p.Y, p.Z)))
	}
	return m
}
