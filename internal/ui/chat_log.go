// internal/ui/chat_log.go
package ui

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"go-tower-arena/internal/config"
)

// ChatLog keeps the last lines of chat and system notices. Add may be called
// from the network goroutine.
type ChatLog struct {
	mu    sync.Mutex
	lines []string
	limit int
}

func NewChatLog(limit int) *ChatLog {
	return &ChatLog{limit: limit}
}

func (l *ChatLog) Add(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
	if len(l.lines) > l.limit {
		l.lines = l.lines[len(l.lines)-l.limit:]
	}
}

// Lines returns a copy, oldest first.
func (l *ChatLog) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

func (l *ChatLog) Draw(screen *ebiten.Image, face font.Face, x, y int) {
	for i, line := range l.Lines() {
		text.Draw(screen, line, face, x, y+i*14, config.TextLightColor)
	}
}
