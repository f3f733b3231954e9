package models

// SimpleResult is the outcome of a simple costing. Numeric fields are fixed
// two-decimal strings.
type SimpleResult struct {
	PurchasePrice   string `bson:"purchase_price" json:"purchasePrice"`
	Expenses        string `bson:"expenses" json:"expenses"`
	IncludeExpenses bool   `bson:"include_expenses" json:"includeExpenses"`
	TotalCosting    string `bson:"total_costing" json:"totalCosting"`
	WastagePercent  string `bson:"wastage_percent" json:"wastagePercent"`
}

// MixResult is the outcome of a combined multi-lot costing. The recleaning
// fields are empty unless a recleaning split was applied.
type MixResult struct {
	TotalWeight           string `bson:"total_weight" json:"totalWeight"`
	AvgPrice              string `bson:"avg_price" json:"avgPrice"`
	BeforeCleaningCosting string `bson:"before_cleaning_costing" json:"beforeCleaningCosting"`
	TaiyarWeight          string `bson:"taiyar_weight" json:"taiyarWeight"`
	WastageWeight         string `bson:"wastage_weight" json:"wastageWeight"`
	WastagePercent        string `bson:"wastage_percent" json:"wastagePercent"`
	AakhoPaloCosting      string `bson:"aakho_palo_costing" json:"aakhoPaloCosting"`
	RecleaningWeight      string `bson:"recleaning_weight,omitempty" json:"recleaningWeight,omitempty"`
	RecleaningPrice       string `bson:"recleaning_price,omitempty" json:"recleaningPrice,omitempty"`
	OneNumberCosting      string `bson:"one_number_costing,omitempty" json:"oneNumberCosting,omitempty"`
}

// HasRecleaning reports whether the 1 Number split was computed.
func (r MixResult) HasRecleaning() bool {
	return r.OneNumberCosting != ""
}

// SouffResult is the outcome of a wastage-only souff calculation.
type SouffResult struct {
	TotalPurchaseWeight string     `bson:"total_purchase_weight" json:"totalPurchaseWeight"`
	Boxes               BoxWeights `bson:"boxes" json:"boxes"`
	TotalTaiyarWeight   string     `bson:"total_taiyar_weight" json:"totalTaiyarWeight"`
	WastageWeight       string     `bson:"wastage_weight" json:"wastageWeight"`
	WastagePercent      string     `bson:"wastage_percent" json:"wastagePercent"`
}
