package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// envBinding ties one settable config field to the variable that overrides it
type envBinding struct {
	path  string
	name  string
	field reflect.Value
}

// envBindings collects every `env` tagged field reachable from v, depth first
func envBindings(v reflect.Value, prefix string) []envBinding {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	var out []envBinding
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		path := sf.Name
		if prefix != "" {
			path = prefix + "." + sf.Name
		}

		fv := v.Field(i)
		if fv.Kind() == reflect.Struct {
			out = append(out, envBindings(fv, path)...)
			continue
		}
		if name := sf.Tag.Get("env"); name != "" {
			out = append(out, envBinding{path: path, name: name, field: fv})
		}
	}
	return out
}

// applyEnv overrides config fields with the environment variables named in their tags.
// Unset variables leave the file or default value in place.
func applyEnv(config *Config) error {
	for _, b := range envBindings(reflect.ValueOf(config), "") {
		raw, ok := os.LookupEnv(b.name)
		if !ok {
			continue
		}
		if err := assign(b.field, raw); err != nil {
			return fmt.Errorf("%s (%s): %w", b.name, b.path, err)
		}
	}
	return nil
}

func assign(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid boolean %q", raw)
		}
		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported list element %s", field.Type().Elem().Kind())
		}
		field.Set(reflect.ValueOf(splitList(raw)))
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}

// splitList parses a comma separated list, dropping blank entries
func splitList(raw string) []string {
	items := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
