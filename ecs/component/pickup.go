package component

import "github.com/milk9111/jumpy/pickup"

type Pickup struct {
	Collectable pickup.Collectable
	Prefab      string
}

var PickupComponent = NewComponent[Pickup]()
