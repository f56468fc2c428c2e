package parameter

// Mesh cache
const (
	// MeshRaycastMaxDistance is the default raycast reach when callers pass no cap (meters)
	MeshRaycastMaxDistance = 30.0

	// MeshIndicesPerTriangle guards index-buffer validation (3 indices per triangle)
	MeshIndicesPerTriangle = 3
)
