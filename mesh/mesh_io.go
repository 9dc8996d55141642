package mesh

import (
	"io"

	"github.com/Flokey82/genworldplanar/various"
)

// Write writes the mesh extent and sites to w. The remaining structure is
// derived from them again by ReadMesh.
func (m *Mesh) Write(w io.Writer) error {
	if err := various.WriteFloat(w, m.Width); err != nil {
		return err
	}
	if err := various.WriteFloat(w, m.Height); err != nil {
		return err
	}
	return various.Write2FloatSlice(w, m.Sites())
}

// ReadMesh reads a mesh written by (*Mesh).Write.
func ReadMesh(r io.Reader) (*Mesh, error) {
	width, err := various.ReadFloat(r)
	if err != nil {
		return nil, err
	}
	height, err := various.ReadFloat(r)
	if err != nil {
		return nil, err
	}
	sites, err := various.Read2FloatSlice(r)
	if err != nil {
		return nil, err
	}
	return NewMesh(sites, width, height)
}
