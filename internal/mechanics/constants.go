package mechanics

// Geometry of the water-wheel train, in millimeters.
const (
	// WaterWheelRadius is the effective arm of the water wheel.
	WaterWheelRadius = 22.0

	// DriverGearRadius is the radius of the driver gear.
	// Measured at 25mm, which is small for DriverGearTeeth; kept as measured.
	DriverGearRadius = 25.0

	// TinyGearRadius is the pitch radius of the small gear (11mm across).
	TinyGearRadius = 11 / 2.0

	// MediumGearRadius is the pitch radius of the middle gear (27mm across).
	MediumGearRadius = 9 * 3 / 2.0
)

// Tooth counts.
const (
	TinyGearTeeth   = 9
	MediumGearTeeth = 21

	// DriverGearTeeth is not used by any stage.
	DriverGearTeeth = 51
)

// AppliedForce is the unit force put into the water wheel.
const AppliedForce = 1.0
