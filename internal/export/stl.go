// Package export writes generated solids and grids to files.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/unixpickle/model3d/model3d"
	"go.uber.org/zap"

	"github.com/Faultbox/printgeo/internal/logger"
	"github.com/Faultbox/printgeo/internal/mesh"
)

// ErrNothingToExport is returned when every solid is empty.
var ErrNothingToExport = errors.New("nothing to export")

// Triangles converts solids into model3d triangles, dropping triangles
// with repeated corners.
func Triangles(solids ...mesh.Solid) []*model3d.Triangle {
	n := 0
	for _, s := range solids {
		n += s.TriangleCount()
	}
	out := make([]*model3d.Triangle, 0, n)
	for _, s := range solids {
		for i := range s.Triangles {
			corners := s.Triangle(i)
			t := &model3d.Triangle{}
			for j, c := range corners {
				t[j] = model3d.XYZ(float64(c[0]), float64(c[1]), float64(c[2]))
			}
			if t[0] == t[1] || t[1] == t[2] || t[0] == t[2] {
				continue
			}
			out = append(out, t)
		}
	}
	return out
}

// ToModel builds a model3d mesh from solids, for inspection and repair
// checks.
func ToModel(solids ...mesh.Solid) *model3d.Mesh {
	return model3d.NewMeshTriangles(Triangles(solids...))
}

// WriteSTL writes solids as one binary STL document.
func WriteSTL(w io.Writer, solids ...mesh.Solid) error {
	tris := Triangles(solids...)
	if len(tris) == 0 {
		return ErrNothingToExport
	}
	return model3d.WriteSTL(w, tris)
}

// SaveSTL writes solids to a binary STL file at path.
func SaveSTL(path string, solids ...mesh.Solid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := WriteSTL(w, solids...); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Named("export").Info("stl written",
		zap.String("path", path),
		zap.Int("solids", len(solids)))
	return nil
}
