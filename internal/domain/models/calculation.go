package models

import "time"

// CalculationKind tags a stored calculation with the calculator that produced it.
type CalculationKind string

const (
	KindSimple CalculationKind = "simple"
	KindMix    CalculationKind = "mix"
	KindSouff  CalculationKind = "souff"
)

// Valid reports whether the kind is one of the known calculators.
func (k CalculationKind) Valid() bool {
	switch k {
	case KindSimple, KindMix, KindSouff:
		return true
	default:
		return false
	}
}

// Commodity identifies the traded commodity a calculation was made for.
type Commodity string

const (
	CommodityJeera   Commodity = "jeera"
	CommodityAjwain  Commodity = "ajwain"
	CommodityIsabgul Commodity = "isabgul"
	CommoditySouff   Commodity = "souff"
)

var commodityNames = map[Commodity]string{
	CommodityJeera:   "Jeera (Cumin)",
	CommoditySouff:   "Souff (Fennel)",
	CommodityAjwain:  "Ajwain",
	CommodityIsabgul: "Isabgul",
}

// Valid reports whether the commodity is known.
func (c Commodity) Valid() bool {
	_, ok := commodityNames[c]
	return ok
}

// DisplayName returns the human readable commodity name.
func (c Commodity) DisplayName() string {
	if name, ok := commodityNames[c]; ok {
		return name
	}
	return "Simple Calculator"
}

// Calculation is a persisted history record. Exactly one of the result
// pointers is set, matching Kind.
type Calculation struct {
	ID        string          `bson:"_id" json:"id"`
	UserID    string          `bson:"user_id" json:"userId"`
	Kind      CalculationKind `bson:"type" json:"type"`
	Commodity Commodity       `bson:"commodity,omitempty" json:"commodity,omitempty"`
	Label     string          `bson:"label" json:"label"`
	Purchases []Lot           `bson:"purchases,omitempty" json:"purchases,omitempty"`
	Simple    *SimpleResult   `bson:"simple,omitempty" json:"simple,omitempty"`
	Mix       *MixResult      `bson:"mix,omitempty" json:"mix,omitempty"`
	Souff     *SouffResult    `bson:"souff,omitempty" json:"souff,omitempty"`
	CreatedAt time.Time       `bson:"created_at" json:"createdAt"`
}

// WastagePercent returns the stored wastage percentage for the record, or an
// empty string when the calculator does not produce one.
func (c Calculation) WastagePercent() string {
	switch {
	case c.Mix != nil:
		return c.Mix.WastagePercent
	case c.Souff != nil:
		return c.Souff.WastagePercent
	case c.Simple != nil:
		return c.Simple.WastagePercent
	default:
		return ""
	}
}

// CalculationFilter narrows a history listing.
type CalculationFilter struct {
	// Key is "all", "simple", "souff" or a commodity key.
	Key   string
	Limit int
}

// Matches applies the history screen filter rules to a record.
func (f CalculationFilter) Matches(c Calculation) bool {
	switch f.Key {
	case "", "all":
		return true
	case string(KindSimple):
		return c.Kind == KindSimple
	case string(CommoditySouff):
		return c.Kind == KindSouff || c.Commodity == CommoditySouff
	default:
		return string(c.Commodity) == f.Key
	}
}
