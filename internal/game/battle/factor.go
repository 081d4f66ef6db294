package battle

type factorKey struct {
	side      Side
	fleetType FleetType
	role      Role
	// versus is true when the opposing fleet is combined.
	versus bool
}

type fleetFactors struct {
	shellingPower    float64
	shellingAccuracy float64
	torpedoPower     float64
}

// fleetFactorTable keys every attacker configuration by whether the defender
// is combined. Single fleets on either side ignore the role.
var fleetFactorTable = map[factorKey]fleetFactors{
	{Player, Single, Main, false}: {0, 90, 5},
	{Player, Single, Main, true}:  {5, 90, 0},

	{Player, CarrierTaskForce, Main, false}:   {2, 78, 0},
	{Player, CarrierTaskForce, Escort, false}: {10, 43, 0},
	{Player, CarrierTaskForce, Main, true}:    {2, 78, 0},
	{Player, CarrierTaskForce, Escort, true}:  {-5, 43, 0},

	{Player, SurfaceTaskForce, Main, false}:   {10, 46, 0},
	{Player, SurfaceTaskForce, Escort, false}: {-5, 70, 0},
	{Player, SurfaceTaskForce, Main, true}:    {2, 46, 0},
	{Player, SurfaceTaskForce, Escort, true}:  {-5, 70, 0},

	{Player, TransportEscort, Main, false}:   {-5, 51, 0},
	{Player, TransportEscort, Escort, false}: {10, 46, 0},
	{Player, TransportEscort, Main, true}:    {2, 51, 0},
	{Player, TransportEscort, Escort, true}:  {-5, 46, 0},

	{Enemy, Single, Main, false}: {0, 90, 5},
	{Enemy, Single, Main, true}:  {5, 90, 0},

	{Enemy, EnemyCombined, Main, false}:   {10, 90, 0},
	{Enemy, EnemyCombined, Escort, false}: {5, 90, 0},
	{Enemy, EnemyCombined, Main, true}:    {2, 90, 0},
	{Enemy, EnemyCombined, Escort, true}:  {-5, 90, 0},
}

// FleetFactors is the fleet-factor triple of an attacker position against a
// defender fleet type.
type FleetFactors struct {
	ShellingPower    float64
	ShellingAccuracy float64
	TorpedoPower     float64
}

// FleetFactorsFor looks up the fleet factors for an attacker at p against a
// defender of type defender. Unlisted configurations fall back to the single
// fleet row of the attacker's side.
func FleetFactorsFor(p Position, defender FleetType) FleetFactors {
	role := p.Role
	if !p.FleetType.Combined() {
		role = Main
	}
	f, ok := fleetFactorTable[factorKey{p.Side, p.FleetType, role, defender.Combined()}]
	if !ok {
		f = fleetFactorTable[factorKey{p.Side, Single, Main, defender.Combined()}]
	}
	return FleetFactors{
		ShellingPower:    f.shellingPower,
		ShellingAccuracy: f.shellingAccuracy,
		TorpedoPower:     f.torpedoPower,
	}
}
