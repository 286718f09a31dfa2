// internal/state/state.go
package state

import "github.com/hajimehoshi/ebiten/v2"

// State — интерфейс для всех состояний
type State interface {
	Enter()
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
	Exit()
}

// StateMachine runs exactly one State at a time. A SetState issued from
// inside the active state's Update is applied after that Update returns.
type StateMachine struct {
	current  State
	updating bool
	next     State
	queued   bool
}

func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// SetState exits the current state and enters next. nil leaves the machine idle.
func (sm *StateMachine) SetState(next State) {
	if sm.updating {
		sm.next, sm.queued = next, true
		return
	}
	sm.switchTo(next)
}

func (sm *StateMachine) switchTo(next State) {
	if sm.current != nil {
		sm.current.Exit()
	}
	sm.current = next
	if next != nil {
		next.Enter()
	}
}

// Current returns the active state, nil before the first SetState.
func (sm *StateMachine) Current() State {
	return sm.current
}

func (sm *StateMachine) Update(deltaTime float64) {
	if sm.current == nil {
		return
	}
	sm.updating = true
	sm.current.Update(deltaTime)
	sm.updating = false
	// переход, запрошенный во время Update
	for sm.queued {
		next := sm.next
		sm.next, sm.queued = nil, false
		sm.switchTo(next)
	}
}

func (sm *StateMachine) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}
