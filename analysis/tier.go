package analysis

import "github.com/lox/pokerodds/poker"

// Tier is a coarse preflop strength bucket for a hand class.
type Tier uint8

const (
	TierTrash Tier = iota
	TierWeak
	TierMedium
	TierStrong
	TierPremium
)

var tierNames = [...]string{
	TierTrash:   "Trash",
	TierWeak:    "Weak",
	TierMedium:  "Medium",
	TierStrong:  "Strong",
	TierPremium: "Premium",
}

func (t Tier) String() string {
	if int(t) < len(tierNames) {
		return tierNames[t]
	}
	return "Unknown"
}

// Tier buckets the class: Premium (JJ+, AK), Strong (TT, AQ, AJ), Medium (77-99,
// suited broadway), Weak (22-66, suited connectors and one-gappers), Trash.
func (h HandClass) Tier() Tier {
	if h.IsPair() {
		switch {
		case h.High >= poker.Jack:
			return TierPremium
		case h.High == poker.Ten:
			return TierStrong
		case h.High >= poker.Seven:
			return TierMedium
		}
		return TierWeak
	}

	switch {
	case h.High == poker.Ace && h.Low == poker.King:
		return TierPremium
	case h.High == poker.Ace && h.Low >= poker.Jack:
		return TierStrong
	case h.Suited && h.Low >= poker.Ten:
		return TierMedium
	case h.Suited && h.High-h.Low <= 2:
		return TierWeak
	}
	return TierTrash
}
