package cones

import (
	"math"
)

// GridLayout describes the cone lattice. Size is the number of cones along
// each axis.
type GridLayout struct {
	Size    int
	Spacing float32
}

// GridPosition returns the lattice position of cell (i, j). The offset uses
// integer division, so an odd-sized grid is centred on a cell and an
// even-sized one is shifted by half a cell.
func (g GridLayout) GridPosition(i, j int) (x, y float32) {
	half := g.Size / 2
	return g.Spacing * float32(i-half), g.Spacing * float32(j-half)
}

// PopulateGrid creates one entity per lattice cell, all sharing mesh. Each
// entity gets its own material: a copy of base whose metallic-roughness
// channel points to a freshly created flat texture. Every cone uses the
// same roughness and metallic values, so these textures are identical.
func PopulateGrid(cmd *Commands, assets *AssetServer, mesh AssetId, base MaterialAsset, grid GridLayout) []EntityId {
	if grid.Size <= 0 {
		return nil
	}

	ids := make([]EntityId, 0, grid.Size*grid.Size)
	for i := 0; i < grid.Size; i++ {
		for j := 0; j < grid.Size; j++ {
			const roughness, metallic = 0.0, 0.0

			transform := NewTransform()
			x, y := grid.GridPosition(i, j)
			transform.SetTranslation(x, y, 0)
			transform.SetRotationXAxis(math.Pi)

			mtl := base
			mtl.MetallicRoughness = assets.TextureFromLinearRgba(LinearRgba{0, roughness, metallic, 0})

			ids = append(ids, cmd.AddEntity(
				&transform,
				&MeshComponent{Mesh: mesh},
				&MaterialComponent{Material: assets.LoadMaterial(mtl)},
			))
		}
	}
	return ids
}

// LoadConeAssets creates the shared cone mesh and the base material whose
// albedo is white at half alpha.
func LoadConeAssets(assets *AssetServer, divisions int) (AssetId, MaterialAsset) {
	mesh := assets.LoadMesh(GenerateCone(divisions))

	base := assets.MaterialDefaults()
	base.Albedo = assets.TextureFromLinearRgba(LinearRgba{1.0, 1.0, 1.0, 0.5})
	return mesh, base
}
