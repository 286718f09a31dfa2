// internal/defs/creatures.go
package defs

import "image/color"

// CreatureDefinition holds all the static data for a specific kind of creature.
type CreatureDefinition struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Health     int           `json:"health"`
	Speed      float64       `json:"speed"` // пикселей в секунду
	Class      CreatureClass `json:"class"`
	Reward     int           `json:"reward"`      // золото за убийство
	LifeDamage int           `json:"life_damage"` // жизней теряется при прорыве
	Visuals    Visuals       `json:"visuals"`
}

// CreatureLibrary is the lookup table of creatures keyed by ID.
var CreatureLibrary = map[string]CreatureDefinition{
	"normal": {ID: "normal", Name: "Grunt", Health: 60, Speed: 40, Class: ClassGround, Reward: 5, LifeDamage: 1,
		Visuals: Visuals{Color: color.RGBA{40, 160, 40, 255}, RadiusFactor: 0.3}},
	"fast": {ID: "fast", Name: "Runner", Health: 40, Speed: 70, Class: ClassGround, Reward: 4, LifeDamage: 1,
		Visuals: Visuals{Color: color.RGBA{230, 200, 40, 255}, RadiusFactor: 0.25}},
	"tough": {ID: "tough", Name: "Brute", Health: 200, Speed: 30, Class: ClassGround, Reward: 12, LifeDamage: 2,
		Visuals: Visuals{Color: color.RGBA{120, 70, 40, 255}, RadiusFactor: 0.4}},
	"swarm": {ID: "swarm", Name: "Swarmling", Health: 20, Speed: 60, Class: ClassGround, Reward: 1, LifeDamage: 1,
		Visuals: Visuals{Color: color.RGBA{160, 40, 160, 255}, RadiusFactor: 0.2}},
	"flyer": {ID: "flyer", Name: "Bat", Health: 50, Speed: 50, Class: ClassAir, Reward: 6, LifeDamage: 1,
		Visuals: Visuals{Color: color.RGBA{60, 60, 200, 255}, RadiusFactor: 0.3}},
	"boss": {ID: "boss", Name: "Warlord", Health: 1500, Speed: 25, Class: ClassGround, Reward: 100, LifeDamage: 5,
		Visuals: Visuals{Color: color.RGBA{200, 20, 20, 255}, RadiusFactor: 0.5}},
}
