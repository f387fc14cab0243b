package serializer

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// ValidationFlags select how strictly JSON objects are checked against the
// properties of their target type.
type ValidationFlags uint8

const (
	// StandardValidation tolerates missing and extra keys.
	StandardValidation ValidationFlags = 0
	// NoExtraProperties rejects keys with no matching property.
	NoExtraProperties ValidationFlags = 0x01
	// AllProperties requires every stored property to be present.
	AllProperties ValidationFlags = 0x02

	FullValidation = NoExtraProperties | AllProperties
)

var validationNames = []struct {
	f ValidationFlags
	n string
}{
	{NoExtraProperties, "NoExtraProperties"},
	{AllProperties, "AllProperties"},
}

func (v ValidationFlags) String() string {
	if v == StandardValidation {
		return "Standard"
	}
	var parts []string
	for _, vn := range validationNames {
		if v&vn.f != 0 {
			parts = append(parts, vn.n)
		}
	}
	return strings.Join(parts, "|")
}

func (v ValidationFlags) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *ValidationFlags) UnmarshalText(d []byte) error {
	var res ValidationFlags
outer:
	for _, part := range strings.Split(string(d), "|") {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "", "standard":
			continue
		case "full":
			res |= FullValidation
			continue
		}
		for _, vn := range validationNames {
			if strings.EqualFold(part, vn.n) {
				res |= vn.f
				continue outer
			}
		}
		return fmt.Errorf("unknown validation flag %q", part)
	}
	*v = res
	return nil
}

func (v *ValidationFlags) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return v.UnmarshalText([]byte(s))
}

// Polymorphing selects whether referenced objects are converted through
// their dynamic type.
type Polymorphing int

const (
	// Disabled always uses the declared type; "@class" is an ordinary key.
	Disabled Polymorphing = iota
	// Enabled uses the dynamic type when it differs from the declared one
	// or the instance asks for it.
	Enabled
	// Forced always uses the dynamic type and requires "@class".
	Forced
)

func (p Polymorphing) String() string {
	switch p {
	case Disabled:
		return "disabled"
	case Enabled:
		return "enabled"
	case Forced:
		return "forced"
	default:
		return fmt.Sprintf("Polymorphing(%d)", int(p))
	}
}

func (p Polymorphing) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Polymorphing) UnmarshalText(d []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(d))) {
	case "disabled", "":
		*p = Disabled
	case "enabled":
		*p = Enabled
	case "forced":
		*p = Forced
	default:
		return fmt.Errorf("unknown polymorphing mode %q", d)
	}
	return nil
}

func (p *Polymorphing) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return p.UnmarshalText([]byte(s))
}

// Config holds the settings of a Serializer. The zero Config is the
// default.
type Config struct {
	// AllowDefaultNull substitutes the zero value when JSON null meets a
	// type that cannot hold null.
	AllowDefaultNull bool `yaml:"allowDefaultNull"`
	// KeepObjectName includes the identity property of objects.
	KeepObjectName bool `yaml:"keepObjectName"`
	// EnumAsString writes enumerations by name.
	EnumAsString bool            `yaml:"enumAsString"`
	Validation   ValidationFlags `yaml:"validation"`
	Polymorphing Polymorphing    `yaml:"polymorphing"`
}

// ParseConfig reads a Config from YAML (or JSON) such as
//
//	enumAsString: true
//	validation: NoExtraProperties|AllProperties
//	polymorphing: enabled
func ParseConfig(d []byte) (Config, error) {
	var c Config
	if len(strings.TrimSpace(string(d))) == 0 {
		return c, nil
	}
	if err := yaml.UnmarshalWithOptions(d, &c, yaml.Strict()); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, nil
}
