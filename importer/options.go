package importer

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const DefaultScale = 145.0

type Options struct {
	Scale float32 `yaml:"scale"`

	// DebugName appends mesh type and channel tokens to node names.
	DebugName             bool `yaml:"debugName"`
	DumpMaterialInfo      bool `yaml:"dumpMaterialInfo"`
	ForceStandardMaterial bool `yaml:"forceStandardMaterial"`
	EnableViewMaterial    bool `yaml:"enableViewMaterial"`
	ClearListener         bool `yaml:"clearListener"`
}

func DefaultOptions() *Options {
	return &Options{Scale: DefaultScale}
}

// LoadOptions reads a YAML options file. Keys missing from the file keep their
// default values.
func LoadOptions(path string) (*Options, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	opt := DefaultOptions()
	if err := yaml.UnmarshalStrict(data, opt); err != nil {
		return nil, errors.Wrapf(err, "options %s", path)
	}
	return opt, nil
}
