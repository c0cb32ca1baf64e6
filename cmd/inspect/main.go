package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/DavidArayan/gfx/internal/mathutil"
	"github.com/DavidArayan/gfx/internal/scene"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect <matrix.json | matrix.bin | 16 numbers, row-major>")
		os.Exit(2)
	}

	m, err := readMatrix(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Matrix:")
	printMat4(m)
	fmt.Printf("Determinant: %.6g\n", m.Determinant())

	fmt.Println("Inverse:")
	var inv mathutil.Mat4
	if err := m.InvertTo(&inv); err != nil {
		if errors.Is(err, mathutil.ErrSingularMatrix) {
			fmt.Println("  singular")
		} else {
			fmt.Printf("  error: %v\n", err)
		}
	} else {
		printMat4(inv)
	}

	fmt.Println("Transpose:")
	t := m.Clone()
	printMat4(*t.Transpose())

	pos, rot, sca := m.Decompose()
	fmt.Println("Decomposition:")
	fmt.Printf("  position: (%.6g, %.6g, %.6g)\n", pos.X(), pos.Y(), pos.Z())
	fmt.Printf("  rotation: (%.6g, %.6g, %.6g, %.6g)\n", rot.X(), rot.Y(), rot.Z(), rot.W())
	fmt.Printf("  scale:    (%.6g, %.6g, %.6g)\n", sca.X(), sca.Y(), sca.Z())
}

// readMatrix accepts a Mat4JSON file, a 64-byte float32 file or 16 numbers
// given in row-major order.
func readMatrix(args []string) (mathutil.Mat4, error) {
	if len(args) == 1 {
		path := args[0]
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			data, err := os.ReadFile(path)
			if err != nil {
				return mathutil.Mat4{}, err
			}
			var m mathutil.Mat4
			if err := json.Unmarshal(data, &m); err != nil {
				return mathutil.Mat4{}, fmt.Errorf("%s: %w", path, err)
			}
			return m, nil
		case ".bin":
			f, err := os.Open(path)
			if err != nil {
				return mathutil.Mat4{}, err
			}
			defer f.Close()
			return scene.ReadMatrixBin(f)
		}
	}

	vals := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return mathutil.Mat4{}, fmt.Errorf("%w: %q is not a number", mathutil.ErrInvalidArgument, a)
		}
		vals = append(vals, v)
	}
	// Row-major input; FromSlice expects column-major.
	m, err := mathutil.Mat4FromSlice(vals)
	if err != nil {
		return mathutil.Mat4{}, err
	}
	return *m.Transpose(), nil
}

func printMat4(m mathutil.Mat4) {
	for r := 0; r < 4; r++ {
		fmt.Printf("  [%10.4f %10.4f %10.4f %10.4f]\n", m.At(r, 0), m.At(r, 1), m.At(r, 2), m.At(r, 3))
	}
}
