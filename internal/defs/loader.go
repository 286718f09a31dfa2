package defs

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// readList decodes a JSON array file of definitions.
func readList[T any](path, what string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s definitions: %w", what, err)
	}
	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode %s definitions %s: %w", what, path, err)
	}
	return list, nil
}

// LoadTowerDefinitions overrides TowerLibrary entries from a JSON array.
// The set of kinds is closed: an unknown kind fails the whole file and
// nothing is applied.
func LoadTowerDefinitions(path string) error {
	list, err := readList[TowerDefinition](path, "tower")
	if err != nil {
		return err
	}
	for _, d := range list {
		if _, ok := TowerLibrary[d.Kind]; !ok {
			return fmt.Errorf("unknown tower kind %q", d.Kind)
		}
		if err := d.Validate(); err != nil {
			return err
		}
	}
	for _, d := range list {
		TowerLibrary[d.Kind] = d
	}
	log.Printf("[defs] %d tower definitions from %s", len(list), path)
	return nil
}

// Validate checks a creature definition loaded from a file.
func (d CreatureDefinition) Validate() error {
	switch {
	case d.ID == "":
		return fmt.Errorf("creature without id")
	case d.Health <= 0 || d.Speed <= 0:
		return fmt.Errorf("creature %q: health and speed must be positive", d.ID)
	case d.Class != ClassGround && d.Class != ClassAir:
		return fmt.Errorf("creature %q: unknown class %q", d.ID, d.Class)
	case d.Reward < 0 || d.LifeDamage < 0:
		return fmt.Errorf("creature %q: negative reward or life damage", d.ID)
	}
	return nil
}

// LoadCreatureDefinitions adds or replaces CreatureLibrary entries, all or nothing.
func LoadCreatureDefinitions(path string) error {
	list, err := readList[CreatureDefinition](path, "creature")
	if err != nil {
		return err
	}
	for _, d := range list {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	for _, d := range list {
		CreatureLibrary[d.ID] = d
	}
	log.Printf("[defs] %d creature definitions from %s", len(list), path)
	return nil
}
