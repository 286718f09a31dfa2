// internal/network/protocol.go
package network

import (
	"errors"

	"go-tower-arena/internal/app"
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/event"
	"go-tower-arena/internal/persistence"
	"go-tower-arena/internal/snapshot"
	"go-tower-arena/internal/types"
)

// MessageType — тип конверта на проводе.
type MessageType string

const (
	// клиент -> сервер
	TypeRegister   MessageType = "register"
	TypePlaceTower MessageType = "place_tower"
	TypeUpgrade    MessageType = "upgrade_tower"
	TypeSell       MessageType = "sell_tower"
	TypeStartWave  MessageType = "start_wave"
	TypeStartGame  MessageType = "start_game"
	TypePause      MessageType = "pause"
	TypeChatAll    MessageType = "chat_all"
	TypeChatOne    MessageType = "chat_one"
	TypeScores     MessageType = "scores"
	TypeGoodbye    MessageType = "goodbye"

	// сервер -> клиент
	TypeRegistered  MessageType = "registered"
	TypeResult      MessageType = "result"
	TypeSnapshot    MessageType = "snapshot"
	TypeEvents      MessageType = "events"
	TypeRoster      MessageType = "roster"
	TypeChat        MessageType = "chat"
	TypeGameStarted MessageType = "game_started"
	TypeGameOver    MessageType = "game_over"
	TypeError       MessageType = "error"
)

// ResultCode is the outcome of a command, as the original clients expect it.
type ResultCode string

const (
	CodeOK               ResultCode = "OK"
	CodeNoMoney          ResultCode = "PAS_ARGENT"
	CodeInaccessibleZone ResultCode = "ZONE_INACCESSIBLE"
	CodePathBlocked      ResultCode = "CHEMIN_BLOQUE"
	CodeError            ResultCode = "ERREUR"
)

// Текстовые ошибки регистрации.
const (
	ReasonGameInProgress = "game in progress"
	ReasonNoSlot         = "no slot"
	ReasonBadPassword    = "bad password"
	ReasonTimeout        = "registration timeout"
)

// Message is the single envelope of the protocol. Exactly one payload field
// matching Type is set. ID ties a result to its request.
type Message struct {
	Type MessageType `json:"type"`
	ID   uint64      `json:"id,omitempty"`

	Register   *RegisterRequest   `json:"register,omitempty"`
	Registered *RegisterResponse  `json:"registered,omitempty"`
	Place      *PlaceTowerRequest `json:"place,omitempty"`
	Tower      *TowerRequest      `json:"tower,omitempty"`
	Wave       *StartWaveRequest  `json:"wave,omitempty"`
	Pause      *PauseRequest      `json:"pause,omitempty"`
	Chat       *ChatMessage       `json:"chat,omitempty"`
	Result     *Result            `json:"result,omitempty"`
	Snapshot   *snapshot.Snapshot `json:"snapshot,omitempty"`
	Events     []event.Event      `json:"events,omitempty"`
	Roster     []RosterEntry      `json:"roster,omitempty"`
	GameOver   *GameOverInfo      `json:"game_over,omitempty"`
	Scores     *ScoresPayload     `json:"scores,omitempty"`
	Error      string             `json:"error,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
}

type RegisterResponse struct {
	PlayerID types.PlayerID `json:"player_id"`
	MatchID  string         `json:"match_id"`
	Terrain  string         `json:"terrain"`
	Slot     int            `json:"slot"`
	Team     types.TeamID   `json:"team"`
}

type PlaceTowerRequest struct {
	Kind defs.TowerKind `json:"kind"`
	X    int            `json:"x"`
	Y    int            `json:"y"`
}

// TowerRequest targets an existing tower (upgrade, sell).
type TowerRequest struct {
	TowerID types.EntityID `json:"tower_id"`
}

type StartWaveRequest struct {
	Kind int `json:"kind"`
}

type PauseRequest struct {
	Paused bool `json:"paused"`
}

// ChatMessage: To = 0 means everyone.
type ChatMessage struct {
	From     types.PlayerID `json:"from,omitempty"`
	FromName string         `json:"from_name,omitempty"`
	To       types.PlayerID `json:"to,omitempty"`
	Text     string         `json:"text"`
}

type Result struct {
	Code   ResultCode     `json:"code"`
	Status int            `json:"status,omitempty"` // статус StartWave
	Entity types.EntityID `json:"entity,omitempty"`
	Value  int            `json:"value,omitempty"` // сумма возврата при продаже
	Error  string         `json:"error,omitempty"`
}

type RosterEntry struct {
	PlayerID types.PlayerID `json:"player_id"`
	Name     string         `json:"name"`
	Slot     int            `json:"slot"`
	Team     types.TeamID   `json:"team"`
}

type GameOverInfo struct {
	Outcome string       `json:"outcome"`
	Winner  types.TeamID `json:"winner,omitempty"`
}

type ScoresPayload struct {
	Terrain string              `json:"terrain"`
	Scores  []persistence.Score `json:"scores"`
}

// CodeFor maps a game error to its wire result code.
func CodeFor(err error) ResultCode {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, app.ErrInsufficientFunds):
		return CodeNoMoney
	case errors.Is(err, app.ErrInvalidPosition):
		return CodeInaccessibleZone
	case errors.Is(err, app.ErrPathBlocked):
		return CodePathBlocked
	default:
		return CodeError
	}
}

// ResultFor builds the result payload of a command.
func ResultFor(err error) *Result {
	r := &Result{Code: CodeFor(err)}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}
