// Package plugin derives the class records a factory publishes from plain
// plugin metadata.
package plugin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/justyntemme/vst3sys/pkg/base"
)

// CategoryAudioEffect is the category of audio processor classes.
const CategoryAudioEffect = "Audio Module Class"

// SDKVersion is reported in PClassInfo2 when Info leaves it empty.
const SDKVersion = "VST 3.7.12"

// Namespace seeds the name-based class IDs derived from Info.ID.
var Namespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("vst3sys.justyntemme.github.com"))

// Info contains plugin metadata
type Info struct {
	ID            string   // Unique plugin identifier (e.g., "com.example.myplugin")
	CID           string   // Explicit class ID in GUID text form; derived from ID when empty
	Name          string   // Display name
	Version       string   // Semantic version (e.g., "1.0.0")
	Vendor        string   // Company/developer name
	Category      string   // Class category; CategoryAudioEffect when empty
	SubCategories []string // e.g. "Fx", "Delay"; joined with '|'
	ClassFlags    uint32
	SDKVersion    string
}

// UID returns the class ID. An explicit CID wins; otherwise the ID is hashed
// into a version 5 UUID so the same ID always yields the same class.
func (i Info) UID() base.FUID {
	if i.CID != "" {
		if f, err := base.ParseFUID(i.CID); err == nil {
			return f
		}
	}
	return base.FromUUID(uuid.NewSHA1(Namespace, []byte(i.ID)))
}

// ValidateUID reports whether UID can produce a usable class ID.
func (i Info) ValidateUID() error {
	if i.CID != "" {
		if _, err := base.ParseFUID(i.CID); err != nil {
			return fmt.Errorf("plugin %q: %w", i.ID, err)
		}
		return nil
	}
	if strings.TrimSpace(i.ID) == "" {
		return errors.New("plugin ID is empty")
	}
	return nil
}

func (i Info) category() string {
	if i.Category == "" {
		return CategoryAudioEffect
	}
	return i.Category
}

// ClassInfo returns the PClassInfo record for IPluginFactory.
func (i Info) ClassInfo() base.PClassInfo {
	return base.NewPClassInfo(i.UID(), base.ManyInstances, i.category(), i.Name)
}

// ClassInfo2 returns the PClassInfo2 record for IPluginFactory2.
func (i Info) ClassInfo2() base.PClassInfo2 {
	sdk := i.SDKVersion
	if sdk == "" {
		sdk = SDKVersion
	}
	return base.NewPClassInfo2(i.ClassInfo(), base.ClassInfo2Fields{
		ClassFlags:    i.ClassFlags,
		SubCategories: strings.Join(i.SubCategories, "|"),
		Vendor:        i.Vendor,
		Version:       i.Version,
		SDKVersion:    sdk,
	})
}
