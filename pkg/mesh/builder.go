package mesh

import "github.com/philipparndt/meshcut/pkg/geometry"

type facetKey struct {
	position geometry.Vector3
	normal   geometry.Vector3
}

// FromFacets builds an indexed mesh from a triangle soup. Corners sharing
// both position and facet normal are merged, so flat faces stay connected
// while hard edges keep separate vertices. A zero facet normal is replaced
// by the normal computed from the winding.
func FromFacets(name string, facets []geometry.Triangle) *Mesh {
	m := &Mesh{Name: name}
	index := make(map[facetKey]int)

	for _, facet := range facets {
		normal := facet.Normal.Normalize()
		if normal == (geometry.Vector3{}) {
			normal = facet.CalculateNormal()
		}
		for _, v := range [3]geometry.Vector3{facet.V1, facet.V2, facet.V3} {
			key := facetKey{position: v, normal: normal}
			idx, ok := index[key]
			if !ok {
				idx = len(m.Vertices)
				index[key] = idx
				m.Vertices = append(m.Vertices, v)
				m.Normals = append(m.Normals, normal)
			}
			m.Triangles = append(m.Triangles, idx)
		}
	}
	return m
}
