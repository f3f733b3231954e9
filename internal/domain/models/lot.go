package models

// Lot is one purchase entry: a weight in kg bought at a price per 20kg.
type Lot struct {
	Weight       float64 `bson:"weight" json:"weight"`
	PricePer20Kg float64 `bson:"price" json:"price"`
}

// BoxWeights holds the souff compartment weights in kg.
type BoxWeights struct {
	JadoMal         float64 `bson:"jado_mal" json:"jadoMal"`
	Recleaning      float64 `bson:"recleaning" json:"recleaning"`
	RecleaningBarik float64 `bson:"recleaning_barik" json:"recleaningBarik"`
	MiniJadoMal     float64 `bson:"mini_jado_mal" json:"miniJadoMal"`
	OneNumberBarik  float64 `bson:"one_number_barik" json:"oneNumberBarik"`
	TwoNumberBarik  float64 `bson:"two_number_barik" json:"twoNumberBarik"`
	Surbhi          float64 `bson:"surbhi" json:"surbhi"`
	KachoJadoMal    float64 `bson:"kacho_jado_mal" json:"kachoJadoMal"`
}

// Total sums every compartment.
func (b BoxWeights) Total() float64 {
	return b.JadoMal +
		b.Recleaning +
		b.RecleaningBarik +
		b.MiniJadoMal +
		b.OneNumberBarik +
		b.TwoNumberBarik +
		b.Surbhi +
		b.KachoJadoMal
}
