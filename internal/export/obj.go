package export

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/Faultbox/meshcraft/internal/mesh"
)

// writeOBJ writes Wavefront OBJ. Indices are 1-based and every face corner
// references the same index for position, texture coordinate and normal.
// Faces are grouped by material in order of first use, with unassigned
// faces first.
func writeOBJ(w io.Writer, m *mesh.Model, materialLib string) error {
	bw := bufio.NewWriter(w)
	msh := m.Mesh

	fmt.Fprintln(bw, "# meshcraft")
	if len(msh.Materials) > 0 {
		fmt.Fprintf(bw, "mtllib %s\n", materialLib)
	}
	if m.Name != "" {
		fmt.Fprintf(bw, "o %s\n", m.Name)
	}

	hasUV := false
	for _, v := range msh.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
		hasUV = hasUV || v.HasTexCoord
	}
	if hasUV {
		for _, v := range msh.Vertices {
			fmt.Fprintf(bw, "vt %g %g\n", v.TexCoord[0], v.TexCoord[1])
		}
	}
	for _, v := range msh.Vertices {
		fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
	}

	for _, run := range materialRuns(msh) {
		if run.material != "" {
			fmt.Fprintf(bw, "usemtl %s\n", run.material)
		}
		for _, fi := range run.faces {
			bw.WriteString("f")
			for _, idx := range msh.Faces[fi].Indices {
				if hasUV {
					fmt.Fprintf(bw, " %d/%d/%d", idx+1, idx+1, idx+1)
				} else {
					fmt.Fprintf(bw, " %d//%d", idx+1, idx+1)
				}
			}
			bw.WriteString("\n")
		}
	}
	return bw.Flush()
}

type materialRun struct {
	material string
	faces    []int
}

// materialRuns groups face indices by material, unassigned faces first and
// the rest in order of first use.
func materialRuns(msh *mesh.Mesh) []materialRun {
	runs := []materialRun{{}}
	pos := map[string]int{"": 0}
	for fi, name := range msh.FaceMaterials {
		i, ok := pos[name]
		if !ok {
			i = len(runs)
			pos[name] = i
			runs = append(runs, materialRun{material: name})
		}
		runs[i].faces = append(runs[i].faces, fi)
	}
	if len(runs[0].faces) == 0 {
		runs = runs[1:]
	}
	return runs
}

// WriteMTL writes the mesh materials as a Wavefront material library,
// sorted by name.
func WriteMTL(w io.Writer, m *mesh.Model) error {
	bw := bufio.NewWriter(w)
	names := make([]string, 0, len(m.Mesh.Materials))
	for name := range m.Mesh.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(bw, "# meshcraft")
	for i, name := range names {
		mat := m.Mesh.Materials[name]
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "newmtl %s\n", name)
		fmt.Fprintf(bw, "Ka %g %g %g\n", mat.Ambient[0], mat.Ambient[1], mat.Ambient[2])
		fmt.Fprintf(bw, "Kd %g %g %g\n", mat.Diffuse[0], mat.Diffuse[1], mat.Diffuse[2])
		fmt.Fprintf(bw, "Ks %g %g %g\n", mat.Specular[0], mat.Specular[1], mat.Specular[2])
		fmt.Fprintf(bw, "d %g\n", mat.Diffuse[3])
		fmt.Fprintf(bw, "Ns %g\n", mat.Shininess)
		fmt.Fprintln(bw, "illum 2")
		for _, tm := range mtlMaps {
			if path, ok := mat.Texture(tm.kind); ok {
				fmt.Fprintf(bw, "%s %s\n", tm.keyword, path)
			}
		}
	}
	return bw.Flush()
}

var mtlMaps = []struct {
	kind    mesh.TextureType
	keyword string
}{
	{mesh.TextureDiffuse, "map_Kd"},
	{mesh.TextureNormal, "map_Bump"},
	{mesh.TextureSpecular, "map_Ks"},
	{mesh.TextureRoughness, "map_Pr"},
	{mesh.TextureMetallic, "map_Pm"},
	{mesh.TextureEmission, "map_Ke"},
	{mesh.TextureOcclusion, "map_Ka"},
}
