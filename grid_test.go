package cones

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridLayout_GridPosition(t *testing.T) {
	odd := GridLayout{Size: 201, Spacing: 2.5}
	x, y := odd.GridPosition(0, 0)
	assert.Equal(t, float32(-250), x)
	assert.Equal(t, float32(-250), y)
	x, y = odd.GridPosition(100, 200)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(250), y)

	even := GridLayout{Size: 4, Spacing: 1}
	x, _ = even.GridPosition(0, 0)
	assert.Equal(t, float32(-2), x)
	x, _ = even.GridPosition(3, 0)
	assert.Equal(t, float32(1), x)
}

func TestPopulateGrid_FullLattice(t *testing.T) {
	app := NewAppBuilder().Build()
	cmd := app.Commands()
	assets := NewAssetServer()

	mesh, base := LoadConeAssets(assets, 7)
	texturesBefore := assets.TextureCount()
	assert.Equal(t, 7, texturesBefore)

	ids := PopulateGrid(cmd, assets, mesh, base, GridLayout{Size: 201, Spacing: 2.5})
	app.FlushCommands()

	const n = 201 * 201
	require.Len(t, ids, n)
	assert.Equal(t, n, cmd.EntityCount())
	assert.Equal(t, texturesBefore+n, assets.TextureCount())
	assert.Equal(t, n, assets.MaterialCount())
	assert.Equal(t, 1, assets.MeshCount())

	flipped := mgl32.QuatRotate(math.Pi, mgl32.Vec3{1, 0, 0})
	positions := make(map[[2]float32]struct{}, n)
	materials := make(map[AssetId]struct{}, n)
	roughness := make(map[AssetId]struct{}, n)
	minX, maxX := float32(math.MaxFloat32), float32(-math.MaxFloat32)

	for _, row := range MakeQuery3[TransformComponent, MeshComponent, MaterialComponent](cmd).All() {
		tr := row.A
		positions[[2]float32{tr.Position.X(), tr.Position.Y()}] = struct{}{}
		minX = min(minX, tr.Position.X(), tr.Position.Y())
		maxX = max(maxX, tr.Position.X(), tr.Position.Y())
		assert.Equal(t, float32(0), tr.Position.Z())
		assert.True(t, tr.Rotation.ApproxEqual(flipped))

		assert.Equal(t, mesh, row.B.Mesh)
		materials[row.C.Material] = struct{}{}

		mtl, ok := assets.Material(row.C.Material)
		require.True(t, ok)
		assert.Equal(t, base.Albedo, mtl.Albedo)
		assert.Equal(t, base.Normal, mtl.Normal)
		roughness[mtl.MetallicRoughness] = struct{}{}
	}

	assert.Len(t, positions, n)
	assert.Len(t, materials, n)
	assert.Len(t, roughness, n)
	assert.Equal(t, float32(-250), minX)
	assert.Equal(t, float32(250), maxX)
}

func TestPopulateGrid_TexturesAreFlatBlack(t *testing.T) {
	app := NewAppBuilder().Build()
	assets := NewAssetServer()
	mesh, base := LoadConeAssets(assets, 7)

	ids := PopulateGrid(app.Commands(), assets, mesh, base, GridLayout{Size: 2, Spacing: 1})
	app.FlushCommands()
	require.Len(t, ids, 4)

	for _, mc := range MakeQuery1[MaterialComponent](app.Commands()).All() {
		mtl, _ := assets.Material(mc.Material)
		tex, ok := assets.Texture(mtl.MetallicRoughness)
		require.True(t, ok)
		assert.Equal(t, LinearRgba{}, tex.LinearRgbaAt(0, 0))
	}

	albedo, ok := assets.Texture(base.Albedo)
	require.True(t, ok)
	assert.Equal(t, LinearRgba{1, 1, 1, 0.5}, albedo.LinearRgbaAt(0, 0))
}

func TestPopulateGrid_Empty(t *testing.T) {
	app := NewAppBuilder().Build()
	assets := NewAssetServer()
	mesh, base := LoadConeAssets(assets, 7)

	assert.Empty(t, PopulateGrid(app.Commands(), assets, mesh, base, GridLayout{Size: 0, Spacing: 2.5}))
	app.FlushCommands()
	assert.Equal(t, 0, app.Commands().EntityCount())
	assert.Equal(t, 0, assets.MaterialCount())
}
