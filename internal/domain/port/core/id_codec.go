package core

// IDCodec converts numeric row ids to opaque public ids and back
type IDCodec interface {
	// Encode returns the public id of a row id
	Encode(id uint64) string
	// Decode returns the row id of a public id, false when it is not valid
	Decode(publicID string) (uint64, bool)
}
