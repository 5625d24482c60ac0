// Package ecs is a small map-backed entity/component store.
package ecs

// EntityID identifies an entity. IDs are never reused within a World.
type EntityID uint64

// NilEntity is never handed out by CreateEntity.
const NilEntity EntityID = 0

// ComponentType keys a component store.
type ComponentType uint8

// Component is any value kept in a World.
type Component interface {
	Type() ComponentType
}
