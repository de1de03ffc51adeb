package legend

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/legend-exp/legendgeom/geom"
)

func buildTestTank(t *testing.T) (*geom.Registry, *Tank) {
	t.Helper()
	reg := geom.NewRegistry()
	ms, err := BuildMaterials(reg)
	require.NoError(t, err)
	tank, err := BuildTank(reg, ms)
	require.NoError(t, err)
	return reg, tank
}

func TestBuildTank_VolumeTree(t *testing.T) {
	reg, tank := buildTestTank(t)

	assert.Equal(t, "tankLV", tank.LV.Name)
	assert.Equal(t, 1300.0, tank.Height)

	require.Len(t, tank.LV.Daughters(), 1)
	assert.Equal(t, "waterPV", tank.LV.Daughters()[0].Name)

	// the cryostat shell and both lids hang in the water
	var waterDaughters []string
	for _, pv := range tank.Water.Daughters() {
		waterDaughters = append(waterDaughters, pv.Name)
	}
	assert.Equal(t, []string{"CoutPV", "LidPV", "BotPV"}, waterDaughters)

	lid, ok := reg.Placement("LidPV")
	require.True(t, ok)
	assert.Equal(t, 3502.5, lid.Position.Z)
	bot, ok := reg.Placement("BotPV")
	require.True(t, ok)
	assert.Equal(t, -3502.5, bot.Position.Z)

	// four towers in the argon, copper shell and fill as siblings
	lar, ok := reg.Volume("LArLV")
	require.True(t, ok)
	require.Len(t, lar.Daughters(), 8)
	assert.Equal(t, "CopperPV0", lar.Daughters()[0].Name)
	assert.Equal(t, "ULArPV0", lar.Daughters()[1].Name)
	assert.Equal(t, "ULArPV3", lar.Daughters()[7].Name)
}

func TestBuildTank_TowerPlacements(t *testing.T) {
	reg, _ := buildTestTank(t)

	want := []r3.Vec{
		{X: 1000, Z: 1500},
		{Y: 1000, Z: 1500},
		{X: -1000, Z: 1500},
		{Y: -1000, Z: 1500},
	}
	for tower, pos := range want {
		label := strconv.Itoa(tower)
		cu, ok := reg.Placement("CopperPV" + label)
		require.True(t, ok)
		assert.Equal(t, pos, cu.Position, "tower %d copper", tower)
		fill, ok := reg.Placement("ULArPV" + label)
		require.True(t, ok)
		assert.Equal(t, pos, fill.Position, "tower %d argon fill", tower)
	}
}

func TestBuildTank_SensitiveVolumes(t *testing.T) {
	reg, tank := buildTestTank(t)

	assert.Equal(t, []geom.Auxiliary{{Type: "SensDet", Value: "WaterDet"}}, tank.Water.Auxiliaries())
	lar, ok := reg.Volume("LArLV")
	require.True(t, ok)
	assert.Equal(t, []geom.Auxiliary{{Type: "SensDet", Value: "LArDet"}}, lar.Auxiliaries())
	for tower := 0; tower < towerCount; tower++ {
		assert.Equal(t, []geom.Auxiliary{{Type: "SensDet", Value: "ULArDet"}}, tank.ULAr[tower].Auxiliaries())
	}
}

func TestTankSlots_CountAndOrder(t *testing.T) {
	_, tank := buildTestTank(t)

	slots := tank.Slots()
	require.Len(t, slots, 448)
	assert.Equal(t, SlotKey{}, slots[0])
	assert.Equal(t, SlotKey{Tower: 3, String: 13, Layer: 7}, slots[447])
	// slot order follows the copy numbers
	for i, key := range slots {
		require.Equal(t, i, key.CopyNumber(), "slot %+v", key)
	}
}

func TestTankSlots_Positions(t *testing.T) {
	_, tank := buildTestTank(t)

	// string 0 lies on the +x axis; layers step down 160 mm from
	// -780 mm
	pos, ok := tank.Slot(SlotKey{})
	require.True(t, ok)
	assert.Equal(t, r3.Vec{X: 340, Z: -780}, pos)

	pos, ok = tank.Slot(SlotKey{String: 3, Layer: 0})
	require.True(t, ok)
	assert.InDelta(t, 0, pos.X, 1e-9)
	assert.InDelta(t, 340, pos.Y, 1e-9)

	pos, ok = tank.Slot(SlotKey{String: 6, Layer: 5})
	require.True(t, ok)
	assert.InDelta(t, -340, pos.X, 1e-9)
	assert.InDelta(t, 0, pos.Y, 1e-9)
	assert.Equal(t, -1580.0, pos.Z)

	// inner strings flank the center on the y axis
	pos, ok = tank.Slot(SlotKey{Tower: 1, String: 12, Layer: 7})
	require.True(t, ok)
	assert.Equal(t, 135.0, pos.Y)
	assert.Equal(t, -1900.0, pos.Z)
	pos, ok = tank.Slot(SlotKey{Tower: 1, String: 13, Layer: 7})
	require.True(t, ok)
	assert.InDelta(t, -135, pos.Y, 1e-9)
	assert.Equal(t, -1900.0, pos.Z)
}

func TestTankSlots_SameGridInEveryTower(t *testing.T) {
	_, tank := buildTestTank(t)

	ref, ok := tank.Slot(SlotKey{String: 5, Layer: 2})
	require.True(t, ok)
	for tower := 1; tower < towerCount; tower++ {
		pos, ok := tank.Slot(SlotKey{Tower: tower, String: 5, Layer: 2})
		require.True(t, ok)
		assert.Equal(t, ref, pos, "tower %d", tower)
	}
}

func TestTankSlot_UnknownKey(t *testing.T) {
	_, tank := buildTestTank(t)
	_, ok := tank.Slot(SlotKey{Tower: towerCount})
	assert.False(t, ok)
}

func TestSlotKeyCopyNumber(t *testing.T) {
	assert.Equal(t, 0, SlotKey{}.CopyNumber())
	assert.Equal(t, 8, SlotKey{String: 1}.CopyNumber())
	assert.Equal(t, 112, SlotKey{Tower: 1}.CopyNumber())
	assert.Equal(t, 447, SlotKey{Tower: 3, String: 13, Layer: 7}.CopyNumber())
}
