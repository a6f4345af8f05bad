package sim

import "reflect"

// Commands buffers structural operations until the end of the frame, so
// systems never mutate entity storage while queries are iterating it.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityID
	attach  []attachCommand
	detach  []detachCommand
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	components []any
}

type attachCommand struct {
	entity    EntityID
	component any
}

type detachCommand struct {
	entity   EntityID
	compType reflect.Type
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues an entity deletion.
func (c *Commands) Delete(entity EntityID) {
	c.deletes = append(c.deletes, entity)
}

// Attach queues a component addition.
func (c *Commands) Attach(entity EntityID, component any) {
	c.attach = append(c.attach, attachCommand{entity: entity, component: component})
}

// Detach queues a component removal.
func (c *Commands) Detach(entity EntityID, compType reflect.Type) {
	c.detach = append(c.detach, detachCommand{entity: entity, compType: compType})
}

// Defer queues an arbitrary function to run after all structural changes.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush applies all buffered operations to the world and resets the buffer.
func (c *Commands) Flush(world *World) {
	world.applyCommands(c)
	c.reset()
}

func (c *Commands) reset() {
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.attach = c.attach[:0]
	c.detach = c.detach[:0]
	c.defers = c.defers[:0]
}
