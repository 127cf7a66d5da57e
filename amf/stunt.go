package amf

import (
	"github.com/binzume/apexconv/adf"
	"github.com/binzume/apexconv/geom"
)

// StuntArea is a named trigger mesh attached to a vehicle part.
type StuntArea struct {
	Name     string
	PartName string
	Vertices []geom.Vector3
	Faces    [][3]int
}

// DecodeStuntAreas returns the stunt areas of an archive, nil when it has none.
func DecodeStuntAreas(a *adf.Archive) ([]*StuntArea, error) {
	v, err := a.FindInstance(TypeStuntAreas)
	if err != nil || v == nil {
		return nil, err
	}
	areas := v.Field("stuntAreas")
	var r []*StuntArea
	for i := 0; i < areas.Len(); i++ {
		av := areas.Index(i)
		area := &StuntArea{
			Name:     av.Field("name").String(),
			PartName: av.Field("partName").String(),
		}
		verts := av.Field("vertices")
		for j := 0; j < verts.Len(); j++ {
			area.Vertices = append(area.Vertices, decodeVector3(verts.Index(j)))
		}
		faces := av.Field("faces").Ints()
		for j := 0; j+2 < len(faces); j += 3 {
			f := [3]int{faces[j], faces[j+1], faces[j+2]}
			for _, idx := range f {
				if idx >= len(area.Vertices) {
					return nil, decodeErrorf("stunt area %s face index %d out of range", area.Name, idx)
				}
			}
			area.Faces = append(area.Faces, f)
		}
		r = append(r, area)
	}
	return r, nil
}
