package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-raytracer/pkg/renderer"
)

// WritePPM writes the tone-mapped pixels as a plain-text P3 image, top row first
func WritePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height)
	for y := 0; y < frame.Height; y++ {
		for _, p := range frame.Pixels[y] {
			fmt.Fprintf(bw, "%d %d %d\n", p.R, p.G, p.B)
		}
	}
	return bw.Flush()
}
