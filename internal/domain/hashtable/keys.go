package hashtable

// Uint32 is a numeric key whose bucket id is the value itself.
type Uint32 uint32

// ID implements Identifiable.
func (k Uint32) ID() uint64 { return uint64(k) }

// Rune is a character key hashed by its code point.
type Rune rune

// ID implements Identifiable.
func (k Rune) ID() uint64 { return uint64(uint32(k)) }
