package event

const (
	PlayerJoined    EventType = "PlayerJoined"
	PlayerLeft      EventType = "PlayerLeft"
	PhaseChanged    EventType = "PhaseChanged"
	TowerPlaced     EventType = "TowerPlaced"  // Башня построена
	TowerUpgraded   EventType = "TowerUpgraded"
	TowerSold       EventType = "TowerSold"
	CreatureSpawned EventType = "CreatureSpawned"
	CreatureKilled  EventType = "CreatureKilled"  // Существо уничтожено
	CreatureArrived EventType = "CreatureArrived" // Существо дошло до цели
	WaveStarted     EventType = "WaveStarted"
	WaveCleared     EventType = "WaveCleared" // Волна закончилась
	TeamLost        EventType = "TeamLost"
	GameOver        EventType = "GameOver"
)
