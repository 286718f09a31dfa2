// internal/input/handler.go
package input

import (
	"errors"
	"fmt"
	"log"

	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/types"
)

// ErrNothingSelected is returned by upgrade and sell without a tower.
var ErrNothingSelected = errors.New("no tower selected")

// Handler keeps the selection state of one player and applies intents
// through a Controller.
type Handler struct {
	ctrl Controller

	Selected  types.EntityID
	BuildKind defs.TowerKind
	LastError error
}

func NewHandler(ctrl Controller) *Handler {
	return &Handler{ctrl: ctrl, BuildKind: defs.TowerArcher}
}

func (h *Handler) PlayerID() types.PlayerID { return h.ctrl.PlayerID() }

// Handle applies one intent. The error is also kept in LastError for the HUD.
func (h *Handler) Handle(in Intent) error {
	err := h.handle(in)
	h.LastError = err
	if err != nil {
		log.Printf("[input] %T: %v", in, err)
	}
	return err
}

func (h *Handler) handle(in Intent) error {
	switch in := in.(type) {
	case SelectIntent:
		snap := h.ctrl.Snapshot()
		if t, ok := snap.TowerAt(in.X, in.Y); ok {
			h.Selected = t.ID
		} else {
			h.Selected = 0
		}
		return nil

	case ChooseKindIntent:
		if _, ok := defs.TowerLibrary[in.Kind]; !ok {
			return fmt.Errorf("unknown tower kind %q", in.Kind)
		}
		h.BuildKind = in.Kind
		return nil

	case PlaceTowerIntent:
		kind := in.Kind
		if kind == "" {
			kind = h.BuildKind
		}
		id, err := h.ctrl.PlaceTower(kind, in.X, in.Y)
		if err != nil {
			return err
		}
		h.Selected = id
		return nil

	case UpgradeIntent:
		id, err := h.target(in.TowerID)
		if err != nil {
			return err
		}
		return h.ctrl.UpgradeTower(id)

	case SellIntent:
		id, err := h.target(in.TowerID)
		if err != nil {
			return err
		}
		if _, err := h.ctrl.SellTower(id); err != nil {
			return err
		}
		if h.Selected == id {
			h.Selected = 0
		}
		return nil

	case WaveIntent:
		return h.ctrl.StartWave(in.Kind)

	case PauseIntent:
		return h.ctrl.SetPaused(in.Paused)
	}
	return fmt.Errorf("unsupported intent %T", in)
}

func (h *Handler) target(id types.EntityID) (types.EntityID, error) {
	if id != 0 {
		return id, nil
	}
	if h.Selected == 0 {
		return 0, ErrNothingSelected
	}
	return h.Selected, nil
}
