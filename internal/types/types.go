// internal/types/types.go
package types

// EntityID — идентификатор сущности в мире. 0 означает "нет сущности".
type EntityID uint32

// PlayerID identifies a registered player.
type PlayerID int

// TeamID identifies a team of players sharing a victory condition.
type TeamID int
