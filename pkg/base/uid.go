package base

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"unsafe"

	"github.com/google/uuid"
)

// TUID is the raw 16-byte identifier as it appears in memory.
type TUID = [16]byte

// FUID is a 16-byte globally unique identifier naming an interface or a
// class. Its bytes follow the GUID memory layout: the first word is little
// endian, the second word is stored as two little-endian halves and the last
// two words are big endian.
type FUID TUID

// NewFUID builds an identifier from the four words of its declaration.
func NewFUID(w0, w1, w2, w3 uint32) FUID {
	var f FUID
	binary.LittleEndian.PutUint32(f[0:4], w0)
	binary.LittleEndian.PutUint16(f[4:6], uint16(w1>>16))
	binary.LittleEndian.PutUint16(f[6:8], uint16(w1))
	binary.BigEndian.PutUint32(f[8:12], w2)
	binary.BigEndian.PutUint32(f[12:16], w3)
	return f
}

// FUIDFromBytes copies a 16-byte identifier out of b.
func FUIDFromBytes(b []byte) (FUID, error) {
	var f FUID
	if len(b) != len(f) {
		return f, fmt.Errorf("fuid: need %d bytes, got %d", len(f), len(b))
	}
	copy(f[:], b)
	return f, nil
}

// FUIDAt copies the identifier stored at p. p need not be aligned.
func FUIDAt(p unsafe.Pointer) FUID {
	return FUID(*(*TUID)(p))
}

// FromUUID converts an RFC 4122 UUID so that the identifier's text form
// equals the UUID's text form.
func FromUUID(u uuid.UUID) FUID {
	f := FUID(u)
	swapGUIDFields((*TUID)(&f))
	return f
}

// GenerateFUID returns a new random (version 4) identifier.
func GenerateFUID() (FUID, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return FUID{}, fmt.Errorf("fuid: generate: %w", err)
	}
	return FromUUID(u), nil
}

// ParseFUID accepts the dashed text form, the braced registry form, the
// urn:uuid: form and the 32 hex digit form produced by ToHex.
func ParseFUID(s string) (FUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return FUID{}, fmt.Errorf("fuid: parse %q: %w", s, err)
	}
	return FromUUID(u), nil
}

// MustParseFUID is like ParseFUID but panics on malformed input. It is meant
// for package-level identifier declarations.
func MustParseFUID(s string) FUID {
	f, err := ParseFUID(s)
	if err != nil {
		panic(err)
	}
	return f
}

// swapGUIDFields converts between GUID memory order and RFC 4122 byte order.
// The conversion is its own inverse.
func swapGUIDFields(t *TUID) {
	t[0], t[1], t[2], t[3] = t[3], t[2], t[1], t[0]
	t[4], t[5] = t[5], t[4]
	t[6], t[7] = t[7], t[6]
}

// UUID returns the identifier in RFC 4122 byte order.
func (f FUID) UUID() uuid.UUID {
	t := TUID(f)
	swapGUIDFields(&t)
	return uuid.UUID(t)
}

// Word1 returns the first declaration word.
func (f FUID) Word1() uint32 {
	return binary.LittleEndian.Uint32(f[0:4])
}

// Word2 returns the second declaration word.
func (f FUID) Word2() uint32 {
	return uint32(binary.LittleEndian.Uint16(f[4:6]))<<16 | uint32(binary.LittleEndian.Uint16(f[6:8]))
}

// Word3 returns the third declaration word.
func (f FUID) Word3() uint32 {
	return binary.BigEndian.Uint32(f[8:12])
}

// Word4 returns the fourth declaration word.
func (f FUID) Word4() uint32 {
	return binary.BigEndian.Uint32(f[12:16])
}

// Words decomposes the identifier into the four words NewFUID accepts.
func (f FUID) Words() (w0, w1, w2, w3 uint32) {
	return f.Word1(), f.Word2(), f.Word3(), f.Word4()
}

// Equal compares two identifiers as two 64-bit loads.
func (f FUID) Equal(other FUID) bool {
	return iidEqual((*TUID)(&f), (*TUID)(&other))
}

// IIDEqual compares the identifiers stored at a and b. Neither pointer needs
// to be aligned.
func IIDEqual(a, b unsafe.Pointer) bool {
	return iidEqual((*TUID)(a), (*TUID)(b))
}

func iidEqual(a, b *TUID) bool {
	return binary.NativeEndian.Uint64(a[0:8]) == binary.NativeEndian.Uint64(b[0:8]) &&
		binary.NativeEndian.Uint64(a[8:16]) == binary.NativeEndian.Uint64(b[8:16])
}

// Compare orders identifiers by their bytes.
func (f FUID) Compare(other FUID) int {
	return bytes.Compare(f[:], other[:])
}

// IsValid reports whether any byte of the identifier is set.
func (f FUID) IsValid() bool {
	return f != FUID{}
}

// String renders the GUID text form, lower case:
// 00000000-0000-0000-c000-000000000046.
func (f FUID) String() string {
	return f.UUID().String()
}

// ToRegistryString renders the braced upper case form used by the Windows
// registry.
func (f FUID) ToRegistryString() string {
	return "{" + strings.ToUpper(f.String()) + "}"
}

// ToHex renders the 32 hex digit form without separators.
func (f FUID) ToHex() string {
	u := f.UUID()
	return strings.ToUpper(hex.EncodeToString(u[:]))
}

// TUID returns a copy of the raw bytes.
func (f FUID) TUID() TUID {
	return TUID(f)
}
