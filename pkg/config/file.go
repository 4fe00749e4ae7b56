package config

import (
	"os"
	"reflect"

	"github.com/imdario/mergo"
	yaml "github.com/jesseduffield/yaml"
)

// MergeFileOptions loads a YAML run file and overlays the flags on top of it.
// Only flags whose value differs from the default win over the file; a flag
// given with its default value leaves the file's value in place.
func MergeFileOptions(path string, flags RawOptions) (RawOptions, error) {
	base := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return flags, configErrorf("cannot read config file %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return flags, configErrorf("bad config file %s: %v", path, err)
	}

	if err := mergo.Merge(&base, changedOptions(flags), mergo.WithOverride); err != nil {
		return flags, configErrorf("cannot merge config file %s: %v", path, err)
	}

	return base, nil
}

// changedOptions keeps only the flags that differ from their defaults: a
// flag still at its default was not explicitly set and must not clobber the
// file's value, so it is zeroed out of the merge below.
func changedOptions(flags RawOptions) RawOptions {
	def := Defaults()
	changed := flags

	cv := reflect.ValueOf(&changed).Elem()
	dv := reflect.ValueOf(def)
	for i := 0; i < cv.NumField(); i++ {
		if cv.Field(i).Interface() == dv.Field(i).Interface() {
			cv.Field(i).SetZero()
		}
	}
	return changed
}
