package layout

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faid1253/whispersoftheloop/game"
	"github.com/faid1253/whispersoftheloop/sim"
)

func testWorld() *sim.World {
	w := sim.NewWorld()
	game.RegisterComponents(w)
	return w
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testDoc() *Document {
	return &Document{
		Name:        "test",
		PlayerSpawn: Vec{0, 1, 0},
		Geometry: []GeometryDef{
			{Position: Vec{0, -0.5, 0}, Size: Vec{20, 1, 20}, Layer: "ground"},
		},
		Emitters: []EmitterDef{
			{Name: "lamp", Position: Vec{-5, 1, 0}},
		},
		Mirrors: []MirrorDef{
			{Name: "fold", Position: Vec{-5, 1, 5}, Controllable: true},
		},
		Receivers: []ReceiverDef{
			{Name: "eye", Position: Vec{5, 1, 5}, Targets: []string{"lift"}, Chained: []string{"eye2"}},
			{Name: "eye2", Position: Vec{8, 1, 5}, OneShot: true},
		},
		Platforms: []PlatformDef{
			{Name: "lift", Position: Vec{10, 0, 0}, Size: Vec{3, 0.5, 3}, LowY: 0, HighY: 4, Speed: 1, Enabled: false},
		},
		ResetTriggers: []ResetTriggerDef{
			{Platform: "lift", Threshold: 4},
		},
		Fragments: []FragmentDef{
			{ID: 1, Position: Vec{0, 1, 3}, Area: "yard"},
		},
		Checkpoints: []CheckpointDef{
			{Position: Vec{3, 1, 0}, Size: Vec{2, 2, 2}, PauseDuration: 5},
		},
		SpawnAreas: []SpawnAreaDef{
			{Name: "yard", Position: Vec{0, 1, 3}, Extents: Vec{8, 0, 8}, MinSpacing: 2},
		},
	}
}

func TestLoadSpawnsAndLinks(t *testing.T) {
	w := testWorld()
	require.NoError(t, Load(w, testDoc(), Defaults{MaxBounces: 8, MaxDistance: 200}, testLogger()))

	assert.Equal(t, 1, sim.Count[game.Player](w))
	assert.Equal(t, 1, sim.Count[game.PlayerSpawn](w))
	assert.Equal(t, 1, sim.Count[game.BeamEmitter](w))
	assert.Equal(t, 2, sim.Count[game.Receiver](w))
	assert.Equal(t, 1, sim.Count[game.Platform](w))
	assert.Equal(t, 1, sim.Count[game.Fragment](w))
	assert.Equal(t, 1, sim.Count[game.Checkpoint](w))

	var eye, lift sim.EntityID
	for item := range sim.NewQuery[struct {
		sim.EntityID
		Receiver *game.Receiver
	}](w).Iter() {
		if len(item.Receiver.Targets) > 0 {
			eye = item.EntityID
		}
	}
	require.NotZero(t, eye)
	recv := sim.Get[game.Receiver](w, eye)
	require.Len(t, recv.Targets, 1)
	require.Len(t, recv.Chained, 1)

	lift = recv.Targets[0]
	plat := sim.Get[game.Platform](w, lift)
	require.NotNil(t, plat, "target resolves to the platform entity")
	assert.Equal(t, 4.0, plat.HighY)
	assert.False(t, sim.Get[game.Activatable](w, lift).Enabled)

	chained := sim.Get[game.Receiver](w, recv.Chained[0])
	require.NotNil(t, chained)
	assert.True(t, chained.OneShot)
}

func TestLoadAppliesEmitterDefaults(t *testing.T) {
	w := testWorld()
	doc := testDoc()
	doc.Emitters = append(doc.Emitters, EmitterDef{Name: "tuned", Position: Vec{0, 2, 0}, MaxBounces: 2, MaxDistance: 30})
	require.NoError(t, Load(w, doc, Defaults{MaxBounces: 8, MaxDistance: 200}, testLogger()))

	var bounces []int
	for item := range sim.NewQuery[struct {
		Emitter *game.BeamEmitter
	}](w).Iter() {
		bounces = append(bounces, item.Emitter.MaxBounces)
	}
	assert.ElementsMatch(t, []int{8, 2}, bounces)
}

func TestLoadUnresolvedReferenceIsSkipped(t *testing.T) {
	w := testWorld()
	doc := testDoc()
	doc.Receivers[0].Targets = []string{"no-such-thing"}
	require.NoError(t, Load(w, doc, Defaults{}, testLogger()))

	for item := range sim.NewQuery[struct {
		Receiver *game.Receiver
	}](w).Iter() {
		assert.Empty(t, item.Receiver.Targets)
	}
}

func TestLoadRejectsUnnamedReceiver(t *testing.T) {
	w := testWorld()
	doc := testDoc()
	doc.Receivers[0].Name = ""
	assert.Error(t, Load(w, doc, Defaults{}, testLogger()))
}

func TestLoadFragmentRandomization(t *testing.T) {
	w := testWorld()
	require.NoError(t, Load(w, testDoc(), Defaults{}, testLogger()))

	for item := range sim.NewQuery[struct {
		Fragment   *game.Fragment
		Randomized *game.Randomized
	}](w).Iter() {
		area := sim.Get[game.SpawnArea](w, item.Randomized.Area)
		require.NotNil(t, area, "area reference resolves")
		assert.Equal(t, 2.0, area.MinSpacing)
	}
}

func TestLoadMirrorRandomization(t *testing.T) {
	w := testWorld()
	doc := testDoc()
	doc.Mirrors[0].Area = "yard"
	doc.Mirrors[0].Yaw = 1.25
	require.NoError(t, Load(w, doc, Defaults{}, testLogger()))

	// The fragment in testDoc is randomized too.
	assert.Equal(t, 2, sim.Count[game.Randomized](w))

	for item := range sim.NewQuery[struct {
		Mirror     *game.Mirror
		Randomized *game.Randomized
	}](w).Iter() {
		assert.Equal(t, 1.25, item.Mirror.HomeYaw)
		require.NotNil(t, sim.Get[game.SpawnArea](w, item.Randomized.Area), "area reference resolves")
	}
}

func TestParseFile(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chamber.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"name": "disk",
			"playerSpawn": [0, 1, 0],
			"receivers": [{"name": "eye", "position": [5, 1, 5]}]
		}`), 0o644))

		doc, err := ParseFile(path)
		require.NoError(t, err)
		assert.Equal(t, "disk", doc.Name)
		require.Len(t, doc.Receivers, 1)
		assert.Equal(t, Vec{5, 1, 5}, doc.Receivers[0].Position)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))
		_, err := ParseFile(path)
		assert.Error(t, err)
	})
}
