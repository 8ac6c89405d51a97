// Package mechanics provides the force relations used along the gear train.
// Both relations are pure and unguarded: a zero divisor yields ±Inf or NaN.
package mechanics

// LeverForce returns the force delivered at the load arm of a lever.
// Fb/Fa = a/b, where a is the effort arm and b the load arm.
func LeverForce(fa, a, b float64) float64 {
	return a / b * fa
}

// GearForce returns the force transmitted across a meshed gear pair,
// scaled by the ratio of driven to driving teeth.
func GearForce(fa, drivenTeeth, drivingTeeth float64) float64 {
	ratio := drivenTeeth / drivingTeeth
	return fa * ratio
}
