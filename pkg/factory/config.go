package factory

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/multierr"

	"github.com/justyntemme/vst3sys/pkg/base"
	"github.com/justyntemme/vst3sys/pkg/framework/debug"
	"github.com/justyntemme/vst3sys/pkg/framework/plugin"
)

// EnvPrefix is the prefix of environment overrides:
// VST3SYS_VENDOR -> vendor, VST3SYS_LOG_LEVEL -> log.level.
// List keys take several values separated by commas or spaces, as in
// VST3SYS_FLAGS="unicode license_check".
const EnvPrefix = "VST3SYS_"

// envLists are the keys whose environment values are split into lists.
var envLists = map[string]bool{
	"flags": true,
}

// envValue maps an environment variable to its configuration key and value.
func envValue(name, value string) (string, interface{}) {
	key := strings.Replace(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "_", ".", -1)
	if envLists[key] {
		return key, strings.FieldsFunc(value, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
	}
	return key, value
}

// Config is the factory metadata a module publishes.
type Config struct {
	Vendor  string        `koanf:"vendor"`
	URL     string        `koanf:"url"`
	Email   string        `koanf:"email"`
	Flags   []string      `koanf:"flags"` // classes_discardable, license_check, component_non_discardable, unicode
	Log     LogConfig     `koanf:"log"`
	Classes []ClassConfig `koanf:"classes"`
}

// LogConfig configures the package logger.
type LogConfig struct {
	Level string `koanf:"level"`
}

// ClassConfig describes one class. ID names the constructor the class is
// bound to.
type ClassConfig struct {
	ID            string   `koanf:"id"`
	CID           string   `koanf:"cid"`
	Name          string   `koanf:"name"`
	Category      string   `koanf:"category"`
	SubCategories []string `koanf:"subcategories"`
	Vendor        string   `koanf:"vendor"`
	Version       string   `koanf:"version"`
	SDKVersion    string   `koanf:"sdk_version"`
	ClassFlags    uint32   `koanf:"class_flags"`
}

// Info converts the class entry into plugin metadata. An empty vendor
// inherits the factory's.
func (c ClassConfig) Info(factoryVendor string) plugin.Info {
	vendor := c.Vendor
	if vendor == "" {
		vendor = factoryVendor
	}
	return plugin.Info{
		ID:            c.ID,
		CID:           c.CID,
		Name:          c.Name,
		Version:       c.Version,
		Vendor:        vendor,
		Category:      c.Category,
		SubCategories: c.SubCategories,
		ClassFlags:    c.ClassFlags,
		SDKVersion:    c.SDKVersion,
	}
}

var flagNames = map[string]base.FactoryFlags{
	"classes_discardable":       base.ClassesDiscardable,
	"license_check":             base.LicenseCheck,
	"component_non_discardable": base.ComponentNonDiscardable,
	"unicode":                   base.Unicode,
}

// ParseFlags combines flag names into FactoryFlags.
func ParseFlags(names []string) (base.FactoryFlags, error) {
	flags := base.NoFlags
	var errs error
	for _, name := range names {
		f, ok := flagNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("unknown factory flag %q", name))
			continue
		}
		flags |= f
	}
	return flags, errs
}

// Load reads the configuration from path, if set, then applies environment
// overrides on top of the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	k.Set("vendor", "vst3sys")
	k.Set("url", "https://github.com/justyntemme/vst3sys")
	k.Set("email", "")
	k.Set("flags", []string{"unicode"})
	k.Set("log.level", "warn")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs error
	if _, err := ParseFlags(c.Flags); err != nil {
		errs = multierr.Append(errs, err)
	}
	if _, err := debug.ParseLevel(c.Log.Level); err != nil {
		errs = multierr.Append(errs, err)
	}

	seenID := make(map[string]bool)
	seenCID := make(map[base.FUID]string)
	for i, class := range c.Classes {
		info := class.Info(c.Vendor)
		if err := info.ValidateUID(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("classes[%d]: %w", i, err))
			continue
		}
		if class.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("classes[%d] %q: name is empty", i, class.ID))
		}
		if seenID[class.ID] {
			errs = multierr.Append(errs, fmt.Errorf("classes[%d]: duplicate id %q", i, class.ID))
		}
		seenID[class.ID] = true

		cid := info.UID()
		if prev, ok := seenCID[cid]; ok {
			errs = multierr.Append(errs, fmt.Errorf("classes[%d] %q: class ID %s already used by %q", i, class.ID, cid, prev))
		}
		seenCID[cid] = class.ID
	}
	return errs
}

// FactoryInfo returns the factory record described by the configuration.
func (c *Config) FactoryInfo() (base.PFactoryInfo, error) {
	flags, err := ParseFlags(c.Flags)
	if err != nil {
		return base.PFactoryInfo{}, err
	}
	return base.NewPFactoryInfo(c.Vendor, c.URL, c.Email, flags), nil
}
