package pickup

import (
	"fmt"
	"strings"

	"github.com/milk9111/jumpy/prefabs"
	"github.com/milk9111/jumpy/shop"
)

const (
	VariantLife     = "life"
	VariantCurrency = "currency"
	VariantPowerUp  = "power_up"
	VariantHazard   = "hazard"
)

// FromSpec builds the collectable a prefab describes, resolving item ids
// against catalogue.
func FromSpec(spec prefabs.PickupComponentSpec, catalogue *shop.Catalogue) (Collectable, error) {
	variant := strings.ToLower(strings.TrimSpace(spec.Variant))
	switch variant {
	case VariantLife:
		id := spec.Item
		if spec.RewardItem != "" {
			id = spec.RewardItem
		}
		item, err := lookup(catalogue, id)
		if err != nil {
			return nil, err
		}
		return NewLife(item), nil
	case VariantCurrency:
		return NewCurrency(spec.Value), nil
	case VariantPowerUp:
		item, err := lookup(catalogue, spec.Item)
		if err != nil {
			return nil, err
		}
		return NewPowerUp(item), nil
	case VariantHazard:
		return NewHazard(spec.Damage), nil
	default:
		return nil, fmt.Errorf("pickup: unknown variant %q", spec.Variant)
	}
}

func lookup(catalogue *shop.Catalogue, id string) (*shop.Item, error) {
	if id == "" {
		return nil, fmt.Errorf("pickup: variant needs an item")
	}
	item, ok := catalogue.Item(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", prefabs.ErrUnknownItem, id)
	}
	return item, nil
}
