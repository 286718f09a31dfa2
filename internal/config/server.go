// internal/config/server.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Duration wraps time.Duration so JSON files can say "5s" or "1000ms".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value) * time.Millisecond
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration %v", v)
	}
	return nil
}

// ServerConfig holds the multiplayer server settings.
type ServerConfig struct {
	ListenAddress       string   `json:"listen_address"`
	WebSocketAddress    string   `json:"websocket_address"` // пусто — шлюз выключен
	Terrain             string   `json:"terrain"`
	MaxPlayers          int      `json:"max_players"` // 0 — по числу слотов карты
	RegistrationTimeout Duration `json:"registration_timeout"`
	HeartbeatInterval   Duration `json:"heartbeat_interval"`
	SnapshotInterval    Duration `json:"snapshot_interval"` // 0 — только по пульсу
	WriteTimeout        Duration `json:"write_timeout"`
	SendQueueSize       int      `json:"send_queue_size"`
	StartingGold        int      `json:"starting_gold"`
	JoinPassword        string   `json:"join_password,omitempty"`
	ScoresDir           string   `json:"scores_dir"`
	TowerDefsPath       string   `json:"tower_defs_path,omitempty"`
	CreatureDefsPath    string   `json:"creature_defs_path,omitempty"`
	Strict              bool     `json:"strict"`
	Seed                int64    `json:"seed"`

	joinHash []byte
}

// DefaultServerConfig returns the settings used when no file is given.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ListenAddress:       fmt.Sprintf(":%d", DefaultPort),
		Terrain:             "ElementTD",
		RegistrationTimeout: Duration{5 * time.Second},
		HeartbeatInterval:   Duration{1000 * time.Millisecond},
		SnapshotInterval:    Duration{200 * time.Millisecond},
		WriteTimeout:        Duration{5 * time.Second},
		SendQueueSize:       256,
		StartingGold:        StartingGold,
		ScoresDir:           "donnees",
	}
}

// LoadServerConfig reads a JSON file over the defaults. An empty path returns the defaults.
func LoadServerConfig(path string) (*ServerConfig, error) {
	cfg := DefaultServerConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal server config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings and hashes the join password.
func (c *ServerConfig) Validate() error {
	if c.ListenAddress == "" {
		return errors.New("listen address is required")
	}
	if c.HeartbeatInterval.Duration <= 0 {
		return errors.New("heartbeat interval must be positive")
	}
	if c.RegistrationTimeout.Duration <= 0 {
		return errors.New("registration timeout must be positive")
	}
	if c.SendQueueSize <= 0 {
		return errors.New("send queue size must be positive")
	}
	if c.MaxPlayers < 0 || c.StartingGold < 0 {
		return errors.New("max players and starting gold must not be negative")
	}
	if c.JoinPassword != "" && c.joinHash == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.JoinPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash join password: %w", err)
		}
		c.joinHash = hash
		c.JoinPassword = ""
	}
	return nil
}

// CheckPassword reports whether the given password may join. Without a configured password anyone may.
func (c *ServerConfig) CheckPassword(password string) bool {
	if c.joinHash == nil {
		return true
	}
	return bcrypt.CompareHashAndPassword(c.joinHash, []byte(password)) == nil
}
