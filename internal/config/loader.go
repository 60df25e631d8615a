package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	yaml "gopkg.in/yaml.v3"
)

// Loader fills a configuration struct from a YAML file and from
// environment variables.
type Loader struct {
	envPrefix string
}

// NewLoader creates a loader whose environment variables start with
// envPrefix followed by an underscore.
func NewLoader(envPrefix string) *Loader {
	return &Loader{envPrefix: envPrefix}
}

// Load applies the file at path, then the environment. An empty path skips
// the file.
func (l *Loader) Load(path string, cfg interface{}) error {
	if err := l.LoadFromFile(path, cfg); err != nil {
		return eris.Wrap(err, "failed to load config from file")
	}
	if err := l.LoadFromEnv(cfg); err != nil {
		return eris.Wrap(err, "failed to load config from environment")
	}
	return nil
}

// LoadFromFile decodes a YAML file into cfg. Keys missing from the file
// keep their current values.
func (l *Loader) LoadFromFile(path string, cfg interface{}) error {
	if path == "" {
		return nil
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
	default:
		return eris.Errorf("unsupported config file format %q (supported: .yaml, .yml)", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "failed to read config file %s", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// A file with no documents changes nothing.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return eris.Wrapf(err, "failed to parse config file %s", path)
	}
	return nil
}

// LoadFromEnv overrides fields of cfg, which must be a pointer to a struct,
// from environment variables. Unset or empty variables are ignored.
func (l *Loader) LoadFromEnv(cfg interface{}) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return eris.Errorf("config must be a pointer to a struct, got %T", cfg)
	}
	return l.loadStruct(v.Elem(), l.envPrefix)
}

func (l *Loader) loadStruct(v reflect.Value, prefix string) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		ft := t.Field(i)
		if !field.CanSet() {
			continue
		}

		name := envKey(ft)
		if name == "-" {
			continue
		}
		if prefix != "" {
			name = prefix + "_" + name
		}

		if field.Kind() == reflect.Struct {
			if err := l.loadStruct(field, name); err != nil {
				return err
			}
			continue
		}

		raw, ok := os.LookupEnv(name)
		if !ok || raw == "" {
			continue
		}
		if err := setFromString(field, raw); err != nil {
			return eris.Wrapf(err, "failed to set %s from %s", ft.Name, name)
		}
	}
	return nil
}

// envKey derives the upper-cased variable segment from the env tag, the
// yaml tag or the field name, in that order.
func envKey(f reflect.StructField) string {
	tag := f.Tag.Get("env")
	if tag == "" {
		tag = strings.Split(f.Tag.Get("yaml"), ",")[0]
	}
	if tag == "" {
		tag = f.Name
	}
	return strings.ToUpper(tag)
}

func setFromString(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return eris.Errorf("invalid bool value %q", raw)
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return eris.Errorf("invalid int value %q", raw)
		}
		field.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return eris.Errorf("invalid float value %q", raw)
		}
		field.SetFloat(f)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return eris.Errorf("unsupported slice type %s", field.Type())
		}
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		field.Set(reflect.ValueOf(parts))
	default:
		return eris.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}
