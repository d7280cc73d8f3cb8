package cones

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/google/uuid"
)

type AssetId string

type TextureFormat uint32

const (
	TextureFormatRGBA8Unorm  TextureFormat = 0x00000012
	TextureFormatRGBA32Float TextureFormat = 0x00000023
)

func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case TextureFormatRGBA8Unorm:
		return 4
	case TextureFormatRGBA32Float:
		return 16
	}
	panic(fmt.Sprintf("unknown texture format %#x", uint32(f)))
}

// LinearRgba is a colour in linear space, each channel in [0, 1].
type LinearRgba struct {
	R, G, B, A float32
}

// AssetServer owns every mesh, texture and material. Entities only refer to
// assets through AssetIds.
type AssetServer struct {
	meshes    map[AssetId]MeshAsset
	textures  map[AssetId]TextureAsset
	materials map[AssetId]MaterialAsset
	defaults  *MaterialAsset
}

type AssetServerModule struct{}

// MeshComponent and MaterialComponent attach shared assets to an entity.
type MeshComponent struct {
	Mesh AssetId
}

type MaterialComponent struct {
	Material AssetId
}

type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Tangent  [3]float32
	TexCoord [2]float32
}

type MeshAsset struct {
	Vertices []Vertex
	Indices  []uint16
}

type TextureAsset struct {
	Texels []uint8
	Width  uint32
	Height uint32
	Format TextureFormat
}

// MaterialAsset is a metallic-roughness PBR material. Every channel refers
// to a texture; copying the struct clones the material.
type MaterialAsset struct {
	AlphaCutoff       float32
	Albedo            AssetId
	Emission          AssetId
	Normal            AssetId
	MetallicRoughness AssetId
	AmbientOcclusion  AssetId
	Cavity            AssetId
}

func NewAssetServer() *AssetServer {
	return &AssetServer{
		meshes:    make(map[AssetId]MeshAsset),
		textures:  make(map[AssetId]TextureAsset),
		materials: make(map[AssetId]MaterialAsset),
	}
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	app.addResources(NewAssetServer())
}

func (server *AssetServer) LoadMesh(mesh MeshAsset) AssetId {
	id := makeAssetId()
	server.meshes[id] = mesh
	return id
}

func (server *AssetServer) CreateTexture(texels []uint8, width uint32, height uint32, format TextureFormat) AssetId {
	if want := int(width) * int(height) * format.BytesPerPixel(); len(texels) != want {
		panic(fmt.Sprintf("texture %dx%d needs %d bytes, got %d", width, height, want, len(texels)))
	}

	id := makeAssetId()
	server.textures[id] = TextureAsset{
		Texels: texels,
		Width:  width,
		Height: height,
		Format: format,
	}
	return id
}

// TextureFromLinearRgba creates a 1x1 floating point texture holding c.
func (server *AssetServer) TextureFromLinearRgba(c LinearRgba) AssetId {
	texels := make([]uint8, 16)
	for i, v := range [4]float32{c.R, c.G, c.B, c.A} {
		binary.LittleEndian.PutUint32(texels[i*4:], math.Float32bits(v))
	}
	return server.CreateTexture(texels, 1, 1, TextureFormatRGBA32Float)
}

func (server *AssetServer) LoadMaterial(material MaterialAsset) AssetId {
	id := makeAssetId()
	server.materials[id] = material
	return id
}

// MaterialDefaults returns the template every material starts from. Its
// flat textures are created on first use.
func (server *AssetServer) MaterialDefaults() MaterialAsset {
	if server.defaults == nil {
		server.defaults = &MaterialAsset{
			AlphaCutoff:       0.01,
			Albedo:            server.TextureFromLinearRgba(LinearRgba{0.5, 0.5, 0.5, 1.0}),
			Emission:          server.TextureFromLinearRgba(LinearRgba{0.0, 0.0, 0.0, 0.0}),
			Normal:            server.TextureFromLinearRgba(LinearRgba{0.5, 0.5, 1.0, 1.0}),
			MetallicRoughness: server.TextureFromLinearRgba(LinearRgba{0.0, 0.5, 0.0, 0.0}),
			AmbientOcclusion:  server.TextureFromLinearRgba(LinearRgba{1.0, 1.0, 1.0, 1.0}),
			Cavity:            server.TextureFromLinearRgba(LinearRgba{1.0, 1.0, 1.0, 1.0}),
		}
	}
	return *server.defaults
}

func (server *AssetServer) Mesh(id AssetId) (MeshAsset, bool) {
	m, ok := server.meshes[id]
	return m, ok
}

func (server *AssetServer) Texture(id AssetId) (TextureAsset, bool) {
	t, ok := server.textures[id]
	return t, ok
}

func (server *AssetServer) Material(id AssetId) (MaterialAsset, bool) {
	m, ok := server.materials[id]
	return m, ok
}

func (server *AssetServer) MeshCount() int     { return len(server.meshes) }
func (server *AssetServer) TextureCount() int  { return len(server.textures) }
func (server *AssetServer) MaterialCount() int { return len(server.materials) }

// LinearRgbaAt decodes the texel at (x, y) of a RGBA32Float texture.
func (t TextureAsset) LinearRgbaAt(x, y uint32) LinearRgba {
	if t.Format != TextureFormatRGBA32Float {
		panic("LinearRgbaAt needs a RGBA32Float texture")
	}
	off := int(y*t.Width+x) * 16
	ch := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(t.Texels[off+i*4:]))
	}
	return LinearRgba{ch(0), ch(1), ch(2), ch(3)}
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
