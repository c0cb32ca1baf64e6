package scene

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/DavidArayan/gfx/internal/mathutil"
)

// MatrixBinSize is the byte size of a matrix in the flat float32 layout.
const MatrixBinSize = 16 * 4

// ReadMatrixBin reads 16 little-endian float32 values in column-major order.
// A truncated stream reports mathutil.ErrInvalidArgument.
func ReadMatrixBin(r io.Reader) (mathutil.Mat4, error) {
	raw := make([]byte, MatrixBinSize)
	n, err := io.ReadFull(r, raw)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return mathutil.Mat4{}, fmt.Errorf("scene: read matrix: %w", err)
	}

	vals := make([]float64, 0, 16)
	for off := 0; off+4 <= n; off += 4 {
		vals = append(vals, float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[off:off+4]))))
	}
	return mathutil.Mat4FromSlice(vals)
}

// WriteMatrixBin writes m as 16 little-endian float32 values.
func WriteMatrixBin(w io.Writer, m mathutil.Mat4) error {
	f := m.Float32s()
	if err := binary.Write(w, binary.LittleEndian, f); err != nil {
		return fmt.Errorf("scene: write matrix: %w", err)
	}
	return nil
}
