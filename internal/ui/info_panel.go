// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go-tower-arena/internal/config"
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/snapshot"
	"go-tower-arena/internal/types"
)

const (
	panelWidth     = 200
	animationSpeed = 12.0
	lineHeight     = 15
)

// InfoPanel shows the selected tower and its upgrade and sell buttons.
// It slides in from the right edge.
type InfoPanel struct {
	Target        types.EntityID
	face          font.Face
	currentX      float64
	targetX       float64
	top           float64
	UpgradeButton *Button
	SellButton    *Button
}

func NewInfoPanel(face font.Face, top float64) *InfoPanel {
	p := &InfoPanel{
		face:     face,
		currentX: config.ScreenWidth,
		targetX:  config.ScreenWidth,
		top:      top,
	}
	p.UpgradeButton = NewButton(Rect{}, "Upgrade")
	p.SellButton = NewButton(Rect{}, "Sell")
	return p
}

func (p *InfoPanel) SetTarget(id types.EntityID) {
	if id == 0 {
		p.Hide()
		return
	}
	p.Target = id
	p.targetX = config.ScreenWidth - panelWidth
}

func (p *InfoPanel) Hide() {
	p.Target = 0
	p.targetX = config.ScreenWidth
}

// Visible reports whether any part of the panel is on screen.
func (p *InfoPanel) Visible() bool {
	return p.currentX < config.ScreenWidth
}

// Update animates the panel and lays the buttons out against the tower and
// the owner's gold.
func (p *InfoPanel) Update(snap *snapshot.Snapshot, me types.PlayerID) {
	diff := p.targetX - p.currentX
	if math.Abs(diff) < animationSpeed {
		p.currentX = p.targetX
	} else {
		p.currentX += math.Copysign(animationSpeed, diff)
	}

	x := float32(p.currentX) + 10
	y := float32(p.top) + 8*lineHeight
	p.UpgradeButton.Rect = Rect{X: x, Y: y, W: 85, H: 22}
	p.SellButton.Rect = Rect{X: x + 95, Y: y, W: 85, H: 22}

	t, ok := snap.Tower(p.Target)
	if !ok {
		p.UpgradeButton.Enabled, p.SellButton.Enabled = false, false
		return
	}
	mine := t.Owner == me
	gold := 0
	if pl, ok := snap.Player(me); ok {
		gold = pl.Gold
	}
	p.UpgradeButton.Enabled = mine && t.Level < t.MaxLevel && gold >= t.Price
	p.UpgradeButton.Text = fmt.Sprintf("Up %d", t.Price)
	if t.Level >= t.MaxLevel {
		p.UpgradeButton.Text = "Max"
	}
	p.SellButton.Enabled = mine
	p.SellButton.Text = fmt.Sprintf("Sell %d", int(float64(t.TotalSpent)*config.SellRefundRate))
}

// Lines returns the text rows describing a tower.
func Lines(t snapshot.Tower) []string {
	name := string(t.Kind)
	targets := ""
	if def, ok := defs.TowerLibrary[t.Kind]; ok {
		name = def.Name
		targets = def.Targets.String()
	}
	return []string{
		fmt.Sprintf("%s  lvl %d/%d", name, t.Level, t.MaxLevel),
		fmt.Sprintf("Damage   %d", t.Damage),
		fmt.Sprintf("Range    %.0f", t.Range),
		fmt.Sprintf("Rate     %.2f/s", t.FireRate),
		fmt.Sprintf("Targets  %s", targets),
		fmt.Sprintf("Spent    %d", t.TotalSpent),
	}
}

func (p *InfoPanel) Draw(screen *ebiten.Image, snap *snapshot.Snapshot, mx, my int) {
	if !p.Visible() {
		return
	}
	x := float32(p.currentX)
	vector.DrawFilledRect(screen, x, float32(p.top), panelWidth, 9*lineHeight+10, config.PanelColor, false)

	t, ok := snap.Tower(p.Target)
	if !ok {
		return
	}
	for i, line := range Lines(t) {
		text.Draw(screen, line, p.face, int(x)+10, int(p.top)+lineHeight*(i+1), config.TextLightColor)
	}
	if owner, ok := snap.Player(t.Owner); ok {
		text.Draw(screen, "Owner    "+owner.Name, p.face, int(x)+10, int(p.top)+lineHeight*7, config.TextLightColor)
	}
	p.UpgradeButton.Draw(screen, p.face, mx, my)
	p.SellButton.Draw(screen, p.face, mx, my)
}
