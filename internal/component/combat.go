package component

// Health — компонент здоровья. Value всегда в [0, Max].
type Health struct {
	Value int
	Max   int
}

// Combat holds a tower's firing stats. Range is in pixels, FireRate in shots per second.
type Combat struct {
	Damage   int
	FireRate float64
	Range    float64
	// FireCooldown — сколько секунд осталось до выстрела; <= 0 значит готова
	FireCooldown float64
}

// Cool advances the cooldown by dt and reports whether the tower may fire now.
func (c *Combat) Cool(dt float64) bool {
	if c.FireCooldown <= 0 {
		return true
	}
	c.FireCooldown -= dt
	return c.FireCooldown <= 0
}

// Idle drops any accumulated lag so a tower without a target does not burst later.
func (c *Combat) Idle() { c.FireCooldown = 0 }

// Fired schedules the next shot. Overshoot from Cool carries into the next period.
func (c *Combat) Fired() {
	if c.FireRate > 0 {
		c.FireCooldown += 1 / c.FireRate
	}
}
