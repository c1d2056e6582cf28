package market

import (
	"fmt"
	"sort"
)

// UnsupportedMarketError rejects an unknown market identifier at game
// initialization.
type UnsupportedMarketError struct {
	ID string
}

func (e *UnsupportedMarketError) Error() string {
	return fmt.Sprintf("unsupported market %q", e.ID)
}

var registry = map[string]func() Provider{
	czechID: func() Provider { return NewCzechMarket() },
	usaID:   func() Provider { return NewUSAMarket() },
	ukID:    func() Provider { return NewUKMarket() },
}

// Select resolves a market identifier to a fresh provider. Called once at
// game initialization; switching markets mid-game is unsupported.
func Select(id string) (Provider, error) {
	build, ok := registry[id]
	if !ok {
		return nil, &UnsupportedMarketError{ID: id}
	}
	return build(), nil
}

// IDs lists the supported market identifiers, sorted.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
