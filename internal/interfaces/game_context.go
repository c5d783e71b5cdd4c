// internal/interfaces/game_context.go
package interfaces

// LoopControl lets a stage clear stop a running loop.
type LoopControl interface {
	Looping() bool
	Stop(reason string)
}
