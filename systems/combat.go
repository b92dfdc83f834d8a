package systems

import "github.com/pthm-cable/critters/components"

// CanAttack reports whether the attacker may strike the target this tick:
// both alive, in melee range, and the attacker has not struck yet.
func CanAttack(attacker *components.Vitals, attackerPos components.Position, target *components.Vitals, targetPos components.Position, reach int) bool {
	if attacker.AttackedThisTick || attacker.Dead || target.Dead {
		return false
	}
	return Within(attackerPos, targetPos, reach)
}
