package meshing

import (
	"sync"
)

// scratchPool recycles worst-case sized build buffers between BuildMesh calls.
// Only the compacted copy leaves the mesher.
var scratchPool = sync.Pool{
	New: func() any { return newMesh() },
}

func getScratch() *Mesh {
	m := scratchPool.Get().(*Mesh)
	m.Vertices = m.Vertices[:0]
	m.TexCoords = m.TexCoords[:0]
	m.Indices = m.Indices[:0]
	return m
}

func putScratch(m *Mesh) {
	scratchPool.Put(m)
}
