package tiles

// InvalidTileSignature is the byte length, and the edge length, of the
// placeholder tile served by the upstream source when it has no data.
const InvalidTileSignature = 2834

// InvalidTilePolicy decides whether a fetched tile is the upstream
// placeholder. A zero field disables the corresponding check.
type InvalidTilePolicy struct {
	// ByteLength rejects raw payloads of exactly this many bytes.
	ByteLength int `json:"byte_length" yaml:"byte_length"`

	// Edge rejects decoded images that are exactly Edge×Edge pixels.
	Edge int `json:"edge" yaml:"edge"`
}

// DefaultInvalidTilePolicy returns the policy matching the upstream
// placeholder tile.
func DefaultInvalidTilePolicy() InvalidTilePolicy {
	return InvalidTilePolicy{
		ByteLength: InvalidTileSignature,
		Edge:       InvalidTileSignature,
	}
}

// RejectsPayload reports whether a raw payload of n bytes is the placeholder.
func (p InvalidTilePolicy) RejectsPayload(n int) bool {
	return p.ByteLength > 0 && n == p.ByteLength
}

// RejectsDimensions reports whether a decoded width×height image is the
// placeholder. Both dimensions must match.
func (p InvalidTilePolicy) RejectsDimensions(width, height int) bool {
	return p.Edge > 0 && width == p.Edge && height == p.Edge
}
