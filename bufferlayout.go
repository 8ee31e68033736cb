package imbridge

import "unsafe"

// VertexBufferLayout describes one entry of a draw list's vertex buffer in bytes.
type VertexBufferLayout struct {
	EntrySize uintptr
	PosOffset uintptr
	UVOffset  uintptr
	ColOffset uintptr
}

// IndexBufferLayout describes one entry of a draw list's index buffer in bytes.
type IndexBufferLayout struct {
	EntrySize uintptr
}

var (
	vertexLayout = VertexBufferLayout{
		EntrySize: unsafe.Sizeof(Vertex{}),
		PosOffset: unsafe.Offsetof(Vertex{}.Pos),
		UVOffset:  unsafe.Offsetof(Vertex{}.UV),
		ColOffset: unsafe.Offsetof(Vertex{}.Col),
	}
	indexLayout = IndexBufferLayout{
		EntrySize: unsafe.Sizeof(DrawIdx(0)),
	}
)

// VertexLayout returns the vertex buffer layout.
// The values are fixed for the lifetime of the process.
func VertexLayout() VertexBufferLayout {
	return vertexLayout
}

// IndexLayout returns the index buffer layout.
func IndexLayout() IndexBufferLayout {
	return indexLayout
}

// VertexBytes returns the vertex buffer of dl as a byte view, suitable for
// uploading to a GPU buffer. The view aliases dl and shares its lifetime.
func VertexBytes(dl *DrawList) []byte {
	if len(dl.VtxBuffer) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&dl.VtxBuffer[0])), len(dl.VtxBuffer)*int(vertexLayout.EntrySize))
}

// IndexBytes returns the index buffer of dl as a byte view.
func IndexBytes(dl *DrawList) []byte {
	if len(dl.IdxBuffer) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&dl.IdxBuffer[0])), len(dl.IdxBuffer)*int(indexLayout.EntrySize))
}
