package game

import (
	"github.com/faid1253/whispersoftheloop/phys"
	"github.com/faid1253/whispersoftheloop/sim"
)

// SceneSystem rebuilds the collider snapshot from world state. It runs
// first so every raycasting system in the frame sees the same geometry.
type SceneSystem struct {
	Scene  sim.Singleton[Scene]
	Bodies sim.Query[struct {
		sim.EntityID
		Transform *Transform
		Collider  *Collider
	}]
}

func (s *SceneSystem) Execute(frame *sim.UpdateFrame) {
	scene := s.Scene.Get()
	scene.Colliders = scene.Colliders[:0]

	for item := range s.Bodies.Iter() {
		scene.Colliders = append(scene.Colliders, phys.Collider{
			ID:    uint64(item.EntityID),
			Layer: item.Collider.Layer,
			Shape: item.Collider.shapeAt(item.Transform.Pos),
		})
	}
}
