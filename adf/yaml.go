package adf

import "gopkg.in/yaml.v2"

// MarshalYAML renders structures as ordered maps, string hashes and enumerations by
// name where known.
func (v *Value) MarshalYAML() (interface{}, error) {
	switch v.Kind() {
	case Uint:
		return v.u, nil
	case Int:
		if s := v.String(); s != "" {
			return s, nil
		}
		return v.i, nil
	case Float:
		return v.f, nil
	case String:
		return v.s, nil
	case Hash64:
		if v.s != "" {
			return v.s, nil
		}
		return v.u, nil
	case Bytes:
		r := make([]int64, len(v.bytes))
		for i := range r {
			r[i] = v.Index(i).Int()
		}
		return r, nil
	case Array:
		return v.elems, nil
	case Struct:
		m := make(yaml.MapSlice, 0, len(v.fields))
		for _, f := range v.fields {
			m = append(m, yaml.MapItem{Key: f.Name, Value: f.Value})
		}
		return m, nil
	}
	return nil, nil
}
