package parameter

import "time"

// Flight loop
const (
	// ProjectileTickRate is the fixed-tick frequency of the flight loop (Hz)
	ProjectileTickRate = 60

	// ProjectileTickInterval is the flight loop period
	ProjectileTickInterval = time.Second / ProjectileTickRate

	// ProjectileMaxRange is the travelled distance at which a projectile expires (meters)
	ProjectileMaxRange = 20.0
)

// Terminal effects
const (
	// ImpactEffectMagnitude is the base terminal effect strength on impact
	ImpactEffectMagnitude = 1.0

	// ImpactEmpoweredMultiplier scales the terminal effect for empowered projectiles
	ImpactEmpoweredMultiplier = 2.5
)
