package i18n

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/magiconair/properties"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Kind selects the bundle format used by every tier.
type Kind int

const (
	// KindProperties reads line-oriented key=value files with the "lang" extension.
	KindProperties Kind = iota
	// KindJSON reads a single top-level JSON object.
	KindJSON
	// KindYAML reads a single top-level YAML mapping.
	KindYAML
	// KindTOML reads a TOML document.
	KindTOML
	// KindCustom uses the Format registered with WithCustomFormat or SetCustomFormat.
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindProperties:
		return "lang"
	case KindJSON:
		return "json"
	case KindYAML:
		return "yaml"
	case KindTOML:
		return "toml"
	case KindCustom:
		return "custom"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseKind maps a name such as "lang", "properties", "json", "yaml", "yml", "toml" or "custom" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lang", "properties":
		return KindProperties, nil
	case "json":
		return KindJSON, nil
	case "yaml", "yml":
		return KindYAML, nil
	case "toml":
		return KindTOML, nil
	case "custom":
		return KindCustom, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Format turns a resource stream into a Bundle.
type Format interface {
	// Kind reports which variant this format is.
	Kind() Kind

	// Extension is the file suffix, without the dot, used to name resources.
	Extension() string

	// Load parses r into a flat bundle. Read errors are returned as is,
	// parse errors wrap ErrInvalidFile.
	Load(r io.Reader) (Bundle, error)
}

// FormatFor returns the built-in format for kind.
// KindCustom has no built-in format and yields ErrInvalidConfiguration.
func FormatFor(kind Kind) (Format, error) {
	switch kind {
	case KindProperties:
		return PropertiesFormat{}, nil
	case KindJSON:
		return JSONFormat{}, nil
	case KindYAML:
		return YAMLFormat{}, nil
	case KindTOML:
		return TOMLFormat{}, nil
	case KindCustom:
		return nil, fmt.Errorf("%w: custom resource type requires a custom format", ErrInvalidConfiguration)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, kind)
	}
}

// PropertiesFormat reads Java-style properties files as UTF-8.
// Values are used verbatim: no ${} expansion and no nesting.
type PropertiesFormat struct {
	// Ext overrides the default "lang" extension, e.g. "properties".
	Ext string
}

func (PropertiesFormat) Kind() Kind { return KindProperties }

func (f PropertiesFormat) Extension() string {
	if f.Ext != "" {
		return f.Ext
	}
	return "lang"
}

func (PropertiesFormat) Load(r io.Reader) (Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, err)
	}

	bundle := make(MapBundle, props.Len())
	for _, key := range props.Keys() {
		if v, ok := props.Get(key); ok {
			bundle[key] = v
		}
	}
	return bundle, nil
}

// JSONFormat reads one top-level JSON object.
// Scalars and single-scalar arrays become templates; nested objects are not flattened.
type JSONFormat struct{}

func (JSONFormat) Kind() Kind        { return KindJSON }
func (JSONFormat) Extension() string { return "json" }

func (JSONFormat) Load(r io.Reader) (Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrInvalidFile)
	}
	return scalarBundle(raw), nil
}

// YAMLFormat reads one top-level YAML mapping with the same value rules as JSONFormat.
type YAMLFormat struct{}

func (YAMLFormat) Kind() Kind        { return KindYAML }
func (YAMLFormat) Extension() string { return "yaml" }

func (YAMLFormat) Load(r io.Reader) (Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, err)
	}
	return scalarBundle(raw), nil
}

// TOMLFormat reads top-level TOML keys with the same value rules as JSONFormat.
// Tables are not flattened.
type TOMLFormat struct{}

func (TOMLFormat) Kind() Kind        { return KindTOML }
func (TOMLFormat) Extension() string { return "toml" }

func (TOMLFormat) Load(r io.Reader) (Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, err)
	}
	return scalarBundle(raw), nil
}

func scalarBundle(raw map[string]any) MapBundle {
	bundle := make(MapBundle, len(raw))
	for key, value := range raw {
		if s, ok := scalarString(value); ok {
			bundle[key] = s
			continue
		}
		if arr, ok := value.([]any); ok && len(arr) == 1 {
			if s, ok := scalarString(arr[0]); ok {
				bundle[key] = s
			}
		}
	}
	return bundle
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case json.Number:
		return x.String(), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case time.Time:
		return x.Format(time.RFC3339), true
	case fmt.Stringer:
		return x.String(), true
	default:
		return "", false
	}
}
