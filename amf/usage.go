package amf

import "fmt"

// Usage is the semantic of a vertex stream.
type Usage uint8

const (
	UsagePosition Usage = iota
	UsageTextureCoordinate
	UsageNormal
	UsageTangent
	UsageBiTangent
	UsageTangentSpace
	UsageBoneIndex
	UsageBoneWeight
	UsageColor
	UsageWireRadius
	UsageDeformNormal
	UsageDeformPoints
)

var usageNames = [...]string{
	"Position", "TextureCoordinate", "Normal", "Tangent", "BiTangent", "TangentSpace",
	"BoneIndex", "BoneWeight", "Color", "WireRadius", "DeformNormal", "DeformPoints",
}

func (u Usage) String() string {
	if int(u) < len(usageNames) {
		return usageNames[u]
	}
	return fmt.Sprintf("Usage(%d)", uint8(u))
}

// Format is the storage encoding of a vertex stream.
type Format uint8

const (
	FormatR32G32B32A32Float Format = iota
	FormatR32G32B32A32Uint
	FormatR32G32B32A32Sint
	FormatR32G32B32Float
	FormatR32G32B32Uint
	FormatR32G32B32Sint
	FormatR16G16B16A16Float
	FormatR16G16B16A16Unorm
	FormatR16G16B16A16Uint
	FormatR16G16B16A16Snorm
	FormatR16G16B16A16Sint
	FormatR16G16B16Float
	FormatR16G16B16Unorm
	FormatR16G16B16Uint
	FormatR16G16B16Snorm
	FormatR16G16B16Sint
	FormatR32G32Float
	FormatR32G32Uint
	FormatR32G32Sint
	FormatR10G10B10A2Unorm
	FormatR10G10B10A2Uint
	FormatR11G11B10Float
	FormatR8G8B8A8Unorm
	FormatR8G8B8A8UnormSRGB
	FormatR8G8B8A8Uint
	FormatR8G8B8A8Snorm
	FormatR8G8B8A8Sint
	FormatR16G16Float
	FormatR16G16Unorm
	FormatR16G16Uint
	FormatR16G16Snorm
	FormatR16G16Sint
	FormatR32Float
	FormatR32Uint
	FormatR32Sint
	FormatR8G8Unorm
	FormatR8G8Uint
	FormatR8G8Snorm
	FormatR8G8Sint
	FormatR16Float
	FormatR16Unorm
	FormatR16Uint
	FormatR16Snorm
	FormatR16Sint
	FormatR8Unorm
	FormatR8Uint
	FormatR8Snorm
	FormatR8Sint
	FormatR32UnitVecAsFloat
	FormatR32R8G8B8A8UnormAsFloat
	FormatR8G8B8A8TangentSpace
	FormatR32UnitUnsignedVecAsFloat
)

type componentKind int

const (
	compFloat componentKind = iota
	compHalf
	compUnorm
	compSnorm
	compUint
	compSint
	compPacked
)

type formatInfo struct {
	name  string
	kind  componentKind
	count int
	width int
}

var formats = map[Format]formatInfo{
	FormatR32G32B32A32Float:         {"R32G32B32A32_FLOAT", compFloat, 4, 4},
	FormatR32G32B32A32Uint:          {"R32G32B32A32_UINT", compUint, 4, 4},
	FormatR32G32B32A32Sint:          {"R32G32B32A32_SINT", compSint, 4, 4},
	FormatR32G32B32Float:            {"R32G32B32_FLOAT", compFloat, 3, 4},
	FormatR32G32B32Uint:             {"R32G32B32_UINT", compUint, 3, 4},
	FormatR32G32B32Sint:             {"R32G32B32_SINT", compSint, 3, 4},
	FormatR16G16B16A16Float:         {"R16G16B16A16_FLOAT", compHalf, 4, 2},
	FormatR16G16B16A16Unorm:         {"R16G16B16A16_UNORM", compUnorm, 4, 2},
	FormatR16G16B16A16Uint:          {"R16G16B16A16_UINT", compUint, 4, 2},
	FormatR16G16B16A16Snorm:         {"R16G16B16A16_SNORM", compSnorm, 4, 2},
	FormatR16G16B16A16Sint:          {"R16G16B16A16_SINT", compSint, 4, 2},
	FormatR16G16B16Float:            {"R16G16B16_FLOAT", compHalf, 3, 2},
	FormatR16G16B16Unorm:            {"R16G16B16_UNORM", compUnorm, 3, 2},
	FormatR16G16B16Uint:             {"R16G16B16_UINT", compUint, 3, 2},
	FormatR16G16B16Snorm:            {"R16G16B16_SNORM", compSnorm, 3, 2},
	FormatR16G16B16Sint:             {"R16G16B16_SINT", compSint, 3, 2},
	FormatR32G32Float:               {"R32G32_FLOAT", compFloat, 2, 4},
	FormatR32G32Uint:                {"R32G32_UINT", compUint, 2, 4},
	FormatR32G32Sint:                {"R32G32_SINT", compSint, 2, 4},
	FormatR10G10B10A2Unorm:          {"R10G10B10A2_UNORM", compPacked, 4, 4},
	FormatR10G10B10A2Uint:           {"R10G10B10A2_UINT", compPacked, 4, 4},
	FormatR11G11B10Float:            {"R11G11B10_FLOAT", compPacked, 3, 4},
	FormatR8G8B8A8Unorm:             {"R8G8B8A8_UNORM", compUnorm, 4, 1},
	FormatR8G8B8A8UnormSRGB:         {"R8G8B8A8_UNORM_SRGB", compUnorm, 4, 1},
	FormatR8G8B8A8Uint:              {"R8G8B8A8_UINT", compUint, 4, 1},
	FormatR8G8B8A8Snorm:             {"R8G8B8A8_SNORM", compSnorm, 4, 1},
	FormatR8G8B8A8Sint:              {"R8G8B8A8_SINT", compSint, 4, 1},
	FormatR16G16Float:               {"R16G16_FLOAT", compHalf, 2, 2},
	FormatR16G16Unorm:               {"R16G16_UNORM", compUnorm, 2, 2},
	FormatR16G16Uint:                {"R16G16_UINT", compUint, 2, 2},
	FormatR16G16Snorm:               {"R16G16_SNORM", compSnorm, 2, 2},
	FormatR16G16Sint:                {"R16G16_SINT", compSint, 2, 2},
	FormatR32Float:                  {"R32_FLOAT", compFloat, 1, 4},
	FormatR32Uint:                   {"R32_UINT", compUint, 1, 4},
	FormatR32Sint:                   {"R32_SINT", compSint, 1, 4},
	FormatR8G8Unorm:                 {"R8G8_UNORM", compUnorm, 2, 1},
	FormatR8G8Uint:                  {"R8G8_UINT", compUint, 2, 1},
	FormatR8G8Snorm:                 {"R8G8_SNORM", compSnorm, 2, 1},
	FormatR8G8Sint:                  {"R8G8_SINT", compSint, 2, 1},
	FormatR16Float:                  {"R16_FLOAT", compHalf, 1, 2},
	FormatR16Unorm:                  {"R16_UNORM", compUnorm, 1, 2},
	FormatR16Uint:                   {"R16_UINT", compUint, 1, 2},
	FormatR16Snorm:                  {"R16_SNORM", compSnorm, 1, 2},
	FormatR16Sint:                   {"R16_SINT", compSint, 1, 2},
	FormatR8Unorm:                   {"R8_UNORM", compUnorm, 1, 1},
	FormatR8Uint:                    {"R8_UINT", compUint, 1, 1},
	FormatR8Snorm:                   {"R8_SNORM", compSnorm, 1, 1},
	FormatR8Sint:                    {"R8_SINT", compSint, 1, 1},
	FormatR32UnitVecAsFloat:         {"R32_UNIT_VEC_AS_FLOAT", compPacked, 3, 4},
	FormatR32R8G8B8A8UnormAsFloat:   {"R32_R8G8B8A8_UNORM_AS_FLOAT", compPacked, 4, 4},
	FormatR8G8B8A8TangentSpace:      {"R8G8B8A8_TANGENT_SPACE", compPacked, 4, 4},
	FormatR32UnitUnsignedVecAsFloat: {"R32_UNIT_UNSIGNED_VEC_AS_FLOAT", compPacked, 3, 4},
}

func (f Format) String() string {
	if info, ok := formats[f]; ok {
		return info.name
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Size returns the number of bytes one element occupies.
func (f Format) Size() int {
	info, ok := formats[f]
	if !ok {
		return 0
	}
	if info.kind == compPacked {
		return 4
	}
	return info.count * info.width
}

// Components returns the number of components the format decodes to.
func (f Format) Components() int {
	return formats[f].count
}
