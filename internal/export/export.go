// Package export writes mesh models as OBJ (with an MTL material library),
// STL or binary glTF.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshcraft/internal/logger"
	"github.com/Faultbox/meshcraft/internal/mesh"
)

var ErrUnsupportedFormat = errors.New("unsupported format")

// Format is an output file format.
type Format int

const (
	FormatOBJ Format = iota
	FormatSTL
	FormatGLB
)

func (f Format) String() string {
	switch f {
	case FormatOBJ:
		return "obj"
	case FormatSTL:
		return "stl"
	case FormatGLB:
		return "glb"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + f.String() }

// ParseFormat accepts obj, stl, glb or gltf, in any case and with or
// without a leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "obj":
		return FormatOBJ, nil
	case "stl":
		return FormatSTL, nil
	case "glb", "gltf":
		return FormatGLB, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// WriteError is an I/O failure while exporting.
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("export %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("export %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Options tune the encoders.
type Options struct {
	// STLASCII writes text STL instead of binary.
	STLASCII bool
	// MaterialLib is the mtllib name written into OBJ files. Empty means
	// <model name>.mtl.
	MaterialLib string
}

// Write encodes m to w with default options.
func Write(w io.Writer, m *mesh.Model, format Format) error {
	return WriteWith(w, m, format, Options{})
}

// WriteWith encodes m to w. The model is validated first, so geometry
// errors are returned as they come from the mesh package.
func WriteWith(w io.Writer, m *mesh.Model, format Format, opts Options) error {
	if err := m.Mesh.Validate(); err != nil {
		return err
	}
	var err error
	switch format {
	case FormatOBJ:
		err = writeOBJ(w, m, opts.materialLib(m))
	case FormatSTL:
		err = writeSTL(w, m, opts.STLASCII)
	case FormatGLB:
		err = writeGLB(w, m)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return &WriteError{Op: "write " + format.String(), Err: err}
	}
	return nil
}

// WriteFile writes m to path in the format given by its extension.
func WriteFile(path string, m *mesh.Model) error {
	return WriteFileWith(path, m, Options{})
}

// WriteFileWith writes m to path. OBJ output also writes the material
// library next to it.
func WriteFileWith(path string, m *mesh.Model, opts Options) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := m.Mesh.Validate(); err != nil {
		return err
	}

	if format == FormatOBJ {
		lib := opts.materialLib(m)
		opts.MaterialLib = lib
		if err := writeFile(filepath.Join(filepath.Dir(path), lib), "write mtl", func(w io.Writer) error {
			return WriteMTL(w, m)
		}); err != nil {
			return err
		}
	}

	if err := writeFile(path, "write "+format.String(), func(w io.Writer) error {
		return WriteWith(w, m, format, opts)
	}); err != nil {
		return err
	}

	logger.Named("export").Debug("model exported",
		zap.String("path", path),
		zap.Stringer("format", format),
		zap.Int("vertices", len(m.Mesh.Vertices)),
		zap.Int("triangles", m.Mesh.TriangleCount()))
	return nil
}

func writeFile(path, op string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Op: "create", Err: err}
	}
	if err := encode(f); err != nil {
		f.Close()
		var we *WriteError
		if errors.As(err, &we) {
			we.Path = path
			return we
		}
		return &WriteError{Path: path, Op: op, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Op: "close", Err: err}
	}
	return nil
}

func (o Options) materialLib(m *mesh.Model) string {
	if o.MaterialLib != "" {
		return o.MaterialLib
	}
	name := m.Name
	if name == "" {
		name = "model"
	}
	return name + ".mtl"
}
