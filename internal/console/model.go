// internal/console/model.go
package console

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"go-tower-arena/internal/network"
	"go-tower-arena/internal/snapshot"
)

const logLines = 12

// Connector dials and registers. It runs inside a tea.Cmd.
type Connector func(ctx context.Context) (*network.Client, network.RegisterResponse, error)

type connectedMsg struct {
	client *network.Client
	info   network.RegisterResponse
	err    error
}

type updateMsg struct{ m *network.Message }

type closedMsg struct{}

type resultMsg struct {
	text string
	err  error
}

// Model is the bubbletea terminal client: a spinner while connecting, then
// the game status, a log and a command line.
type Model struct {
	connect Connector
	client  *network.Client
	info    network.RegisterResponse

	Spinner  spinner.Model
	Input    textinput.Model
	snap     snapshot.Snapshot
	log      []string
	Err      error
	Loading  bool
	Quitting bool
}

func NewModel(connect Connector) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Placeholder = "help"
	ti.CharLimit = 200
	ti.Width = 60

	return Model{connect: connect, Spinner: s, Input: ti, Loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, m.connectCmd())
}

func (m Model) connectCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c, info, err := m.connect(ctx)
		return connectedMsg{client: c, info: info, err: err}
	}
}

func waitForUpdate(c *network.Client) tea.Cmd {
	return func() tea.Msg {
		select {
		case u := <-c.Updates():
			return updateMsg{u}
		case <-c.Done():
			return closedMsg{}
		}
	}
}

func (m Model) execCmd(line string) tea.Cmd {
	client, terrain := m.client, m.info.Terrain
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		text, err := Execute(ctx, client, terrain, line)
		return resultMsg{text: text, err: err}
	}
}

func (m *Model) addLog(lines ...string) {
	for _, l := range lines {
		m.log = append(m.log, strings.Split(l, "\n")...)
	}
	if len(m.log) > logLines {
		m.log = m.log[len(m.log)-logLines:]
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m.quit()
		case tea.KeyEnter:
			if m.client == nil {
				return m, nil
			}
			line := strings.TrimSpace(m.Input.Value())
			m.Input.SetValue("")
			if line == "" {
				return m, nil
			}
			m.addLog("> " + line)
			return m, m.execCmd(line)
		}

	case connectedMsg:
		m.Loading = false
		if msg.err != nil {
			m.Err = msg.err
			return m, tea.Quit
		}
		m.client, m.info = msg.client, msg.info
		m.addLog(fmt.Sprintf("joined %s as player %d, team %d. type help", msg.info.Terrain, msg.info.PlayerID, msg.info.Team))
		return m, tea.Batch(m.Input.Focus(), waitForUpdate(m.client))

	case updateMsg:
		if msg.m.Type == network.TypeSnapshot && msg.m.Snapshot != nil {
			m.snap = *msg.m.Snapshot
		}
		if line, ok := FormatUpdate(msg.m); ok {
			m.addLog(line)
		}
		return m, waitForUpdate(m.client)

	case closedMsg:
		m.Err = errors.New("connection closed by server")
		return m, tea.Quit

	case resultMsg:
		if errors.Is(msg.err, ErrQuit) {
			return m.quit()
		}
		if msg.err != nil {
			m.addLog("error: " + msg.err.Error())
		} else if msg.text != "" {
			m.addLog(msg.text)
		}
		return m, nil

	case spinner.TickMsg:
		if m.Loading {
			var cmd tea.Cmd
			m.Spinner, cmd = m.Spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Quitting = true
	if m.client != nil {
		m.client.Send(&network.Message{Type: network.TypeGoodbye})
		m.client.Close()
	}
	return m, tea.Quit
}

func (m Model) View() string {
	if m.Quitting {
		return "Goodbye\n"
	}
	s := "-- Tower Arena --\n"
	if m.Loading {
		return s + fmt.Sprintf("%s Connecting...\n", m.Spinner.View())
	}
	if m.Err != nil {
		return s + fmt.Sprintf("Error: %v\n", m.Err)
	}
	s += Status(m.snap, m.info.PlayerID) + "\n\n"
	s += strings.Join(m.log, "\n") + "\n\n"
	s += m.Input.View() + "\n"
	return s
}
