package base

import (
	"fmt"
	"sync"
)

// InterfaceInfo describes a declared interface: its identifier, whether
// handles of it can issue queries and the interfaces its table extends.
type InterfaceInfo struct {
	Name string
	IID  FUID

	// Queryable is false for marker capabilities that carry an identifier
	// but no FUnknown table.
	Queryable bool

	// Bases lists the interfaces whose tables are prefixes of this one,
	// nearest first.
	Bases []*InterfaceInfo
}

var (
	declared   = make(map[FUID]*InterfaceInfo)
	declaredMu sync.RWMutex
)

// Declare registers an interface with the identifier built from the four
// words. bases are the interfaces whose tables prefix this one; FUnknown is
// implied and need not be listed. Declaring two different names under one
// identifier panics; declaring a name again returns the first declaration.
func Declare(name string, w0, w1, w2, w3 uint32, bases ...*InterfaceInfo) *InterfaceInfo {
	return declare(&InterfaceInfo{
		Name:      name,
		IID:       NewFUID(w0, w1, w2, w3),
		Queryable: true,
		Bases:     bases,
	})
}

// DeclareMarker registers a capability that has an identifier but cannot
// service queries. Casting from a marker handle fails with ErrBadQuery.
func DeclareMarker(name string, w0, w1, w2, w3 uint32) *InterfaceInfo {
	return declare(&InterfaceInfo{
		Name: name,
		IID:  NewFUID(w0, w1, w2, w3),
	})
}

func declare(info *InterfaceInfo) *InterfaceInfo {
	declaredMu.Lock()
	defer declaredMu.Unlock()

	if prev, ok := declared[info.IID]; ok {
		if prev.Name != info.Name {
			panic(fmt.Sprintf("base: %s and %s share identifier %s", prev.Name, info.Name, info.IID))
		}
		return prev
	}
	declared[info.IID] = info
	return info
}

// Lookup returns the interface declared under iid.
func Lookup(iid FUID) (*InterfaceInfo, bool) {
	declaredMu.RLock()
	defer declaredMu.RUnlock()
	info, ok := declared[iid]
	return info, ok
}

// NameOf returns the declared name of iid, or its text form.
func NameOf(iid FUID) string {
	if info, ok := Lookup(iid); ok {
		return info.Name
	}
	return iid.String()
}

// Implements reports whether a pointer to this interface's table also
// serves iid, which holds for the interface itself, every base and FUnknown.
func (i *InterfaceInfo) Implements(iid FUID) bool {
	if i.IID.Equal(iid) {
		return true
	}
	if i.Queryable && iid.Equal(FUnknownIID) {
		return true
	}
	for _, b := range i.Bases {
		if b.Implements(iid) {
			return true
		}
	}
	return false
}

// Ancestors returns every interface this one extends, depth first, without
// duplicates and without the interface itself. FUnknown comes last.
func (i *InterfaceInfo) Ancestors() []*InterfaceInfo {
	var out []*InterfaceInfo
	seen := map[FUID]bool{i.IID: true}
	var walk func(*InterfaceInfo)
	walk = func(n *InterfaceInfo) {
		for _, b := range n.Bases {
			if seen[b.IID] {
				continue
			}
			seen[b.IID] = true
			out = append(out, b)
			walk(b)
		}
	}
	walk(i)
	if i.Queryable && !seen[FUnknownIID] {
		out = append(out, FUnknownInfo)
	}
	return out
}

func (i *InterfaceInfo) String() string {
	return i.Name + " " + i.IID.String()
}
