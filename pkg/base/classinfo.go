package base

import (
	"bytes"
	"unicode/utf8"

	"github.com/justyntemme/vst3sys/pkg/framework/debug"
)

// Buffer capacities of the metadata records, including the terminating NUL.
const (
	NameSize          = 64
	URLSize           = 256
	EmailSize         = 128
	CategorySize      = 32
	SubCategoriesSize = 128
	VendorSize        = 64
	VersionSize       = 64
)

// FactoryFlags describe a factory's behaviour to the host.
type FactoryFlags int32

const (
	NoFlags FactoryFlags = 0
	// ClassesDiscardable lets the host unload the module and reload it.
	ClassesDiscardable FactoryFlags = 1 << 0
	// LicenseCheck asks the host to check the license before loading.
	LicenseCheck FactoryFlags = 1 << 1
	// ComponentNonDiscardable keeps the module loaded until process exit.
	ComponentNonDiscardable FactoryFlags = 1 << 3
	// Unicode marks the factory's strings as UTF-16.
	Unicode FactoryFlags = 1 << 4
)

// Has reports whether every bit of flag is set.
func (f FactoryFlags) Has(flag FactoryFlags) bool {
	return f&flag == flag
}

// ClassCardinality bounds how many instances of a class may exist.
type ClassCardinality int32

// ManyInstances is the only cardinality hosts recognise.
const ManyInstances ClassCardinality = 0x7FFFFFFF

// CopyString copies s into dst as a NUL terminated, zero padded string.
// Strings that do not fit in len(dst)-1 bytes are cut at the last complete
// UTF-8 sequence; the result reports whether that happened.
func CopyString(dst []byte, s string) (truncated bool) {
	if len(dst) == 0 {
		return s != ""
	}
	n := len(s)
	if n > len(dst)-1 {
		n = len(dst) - 1
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		truncated = true
	}
	copy(dst, s[:n])
	clear(dst[n:])
	return truncated
}

// CString returns the bytes of b up to the first NUL.
func CString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

func copyField(field string, dst []byte, s string) {
	truncated := CopyString(dst, s)
	debug.WarnIf(truncated, "%s %q truncated to %d bytes", field, s, len(CString(dst)))
}

// PFactoryInfo is the record IPluginFactory.getFactoryInfo fills in.
type PFactoryInfo struct {
	Vendor [NameSize]byte
	URL    [URLSize]byte
	Email  [EmailSize]byte
	Flags  FactoryFlags
}

// NewPFactoryInfo builds a factory record. Over-long strings are truncated.
func NewPFactoryInfo(vendor, url, email string, flags FactoryFlags) PFactoryInfo {
	var info PFactoryInfo
	copyField("vendor", info.Vendor[:], vendor)
	copyField("url", info.URL[:], url)
	copyField("email", info.Email[:], email)
	info.Flags = flags
	return info
}

func (i *PFactoryInfo) VendorString() string { return CString(i.Vendor[:]) }
func (i *PFactoryInfo) URLString() string    { return CString(i.URL[:]) }
func (i *PFactoryInfo) EmailString() string  { return CString(i.Email[:]) }

// PClassInfo describes one class a factory can create.
type PClassInfo struct {
	CID         TUID
	Cardinality ClassCardinality
	Category    [CategorySize]byte
	Name        [NameSize]byte
}

// NewPClassInfo builds a class record. Over-long strings are truncated.
func NewPClassInfo(cid FUID, cardinality ClassCardinality, category, name string) PClassInfo {
	info := PClassInfo{CID: cid.TUID(), Cardinality: cardinality}
	copyField("category", info.Category[:], category)
	copyField("name", info.Name[:], name)
	return info
}

// ClassID returns CID as an identifier.
func (i *PClassInfo) ClassID() FUID          { return FUID(i.CID) }
func (i *PClassInfo) CategoryString() string { return CString(i.Category[:]) }
func (i *PClassInfo) NameString() string     { return CString(i.Name[:]) }

// PClassInfo2 extends PClassInfo with the fields IPluginFactory2 reports.
type PClassInfo2 struct {
	PClassInfo
	ClassFlags    uint32
	SubCategories [SubCategoriesSize]byte
	Vendor        [VendorSize]byte
	Version       [VersionSize]byte
	SDKVersion    [VersionSize]byte
}

// ClassInfo2Fields are the strings PClassInfo2 adds.
type ClassInfo2Fields struct {
	ClassFlags    uint32
	SubCategories string
	Vendor        string
	Version       string
	SDKVersion    string
}

// NewPClassInfo2 extends base with extra. Over-long strings are truncated.
func NewPClassInfo2(base PClassInfo, extra ClassInfo2Fields) PClassInfo2 {
	info := PClassInfo2{PClassInfo: base, ClassFlags: extra.ClassFlags}
	copyField("subCategories", info.SubCategories[:], extra.SubCategories)
	copyField("vendor", info.Vendor[:], extra.Vendor)
	copyField("version", info.Version[:], extra.Version)
	copyField("sdkVersion", info.SDKVersion[:], extra.SDKVersion)
	return info
}

func (i *PClassInfo2) SubCategoriesString() string { return CString(i.SubCategories[:]) }
func (i *PClassInfo2) VendorString() string        { return CString(i.Vendor[:]) }
func (i *PClassInfo2) VersionString() string       { return CString(i.Version[:]) }
func (i *PClassInfo2) SDKVersionString() string    { return CString(i.SDKVersion[:]) }
