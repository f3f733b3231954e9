package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/mamadbah2/commodity-costing/internal/domain/models"
	"github.com/mamadbah2/commodity-costing/internal/service/costing"
)

// formNumber is a form field as typed by the user. It accepts JSON strings,
// numbers and null.
type formNumber string

func (n *formNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = formNumber(s)
		return nil
	}
	*n = formNumber(b)
	return nil
}

// Float parses the field, returning NaN when it is empty or not a number.
func (n formNumber) Float() float64 {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

type lotRequest struct {
	Weight formNumber `json:"weight"`
	Price  formNumber `json:"price"`
}

type boxesRequest struct {
	JadoMal         formNumber `json:"jadoMal"`
	Recleaning      formNumber `json:"recleaning"`
	RecleaningBarik formNumber `json:"recleaningBarik"`
	MiniJadoMal     formNumber `json:"miniJadoMal"`
	OneNumberBarik  formNumber `json:"oneNumberBarik"`
	TwoNumberBarik  formNumber `json:"twoNumberBarik"`
	Surbhi          formNumber `json:"surbhi"`
	KachoJadoMal    formNumber `json:"kachoJadoMal"`
}

// calculationRequest carries the fields of every calculator form. Each
// endpoint reads the subset it needs.
type calculationRequest struct {
	Type      string `json:"type"`
	Commodity string `json:"commodity"`
	Label     string `json:"label"`

	PurchasePrice   formNumber `json:"purchasePrice"`
	WastagePercent  formNumber `json:"wastagePercent"`
	IncludeExpenses *bool      `json:"includeExpenses"`

	Purchases        []lotRequest `json:"purchases"`
	TaiyarWeight     formNumber   `json:"taiyarWeight"`
	RecleaningWeight formNumber   `json:"recleaningWeight"`
	RecleaningPrice  formNumber   `json:"recleaningPrice"`

	Boxes boxesRequest `json:"boxes"`
}

func (r calculationRequest) simpleInput() costing.SimpleInput {
	include := true
	if r.IncludeExpenses != nil {
		include = *r.IncludeExpenses
	}
	return costing.SimpleInput{
		PurchasePrice:   r.PurchasePrice.Float(),
		WastagePercent:  r.WastagePercent.Float(),
		IncludeExpenses: include,
	}
}

func (r calculationRequest) lots() []models.Lot {
	lots := make([]models.Lot, 0, len(r.Purchases))
	for _, p := range r.Purchases {
		lots = append(lots, models.Lot{Weight: p.Weight.Float(), PricePer20Kg: p.Price.Float()})
	}
	return lots
}

func (r calculationRequest) mixInput() costing.MixInput {
	return costing.MixInput{
		Lots:             r.lots(),
		TaiyarWeight:     r.TaiyarWeight.Float(),
		RecleaningWeight: r.RecleaningWeight.Float(),
		RecleaningPrice:  r.RecleaningPrice.Float(),
	}
}

func (r calculationRequest) souffInput() costing.SouffInput {
	return costing.SouffInput{
		Lots: r.lots(),
		Boxes: models.BoxWeights{
			JadoMal:         r.Boxes.JadoMal.Float(),
			Recleaning:      r.Boxes.Recleaning.Float(),
			RecleaningBarik: r.Boxes.RecleaningBarik.Float(),
			MiniJadoMal:     r.Boxes.MiniJadoMal.Float(),
			OneNumberBarik:  r.Boxes.OneNumberBarik.Float(),
			TwoNumberBarik:  r.Boxes.TwoNumberBarik.Float(),
			Surbhi:          r.Boxes.Surbhi.Float(),
			KachoJadoMal:    r.Boxes.KachoJadoMal.Float(),
		},
	}
}

// storedPurchases keeps the lots that take part in a calculation, in entry
// order. Weights must be finite and positive. With requirePrice the price
// must be too, otherwise an unusable price is stored as 0.
func storedPurchases(lots []models.Lot, requirePrice bool) []models.Lot {
	out := make([]models.Lot, 0, len(lots))
	for _, lot := range lots {
		if !(lot.Weight > 0) || math.IsInf(lot.Weight, 0) {
			continue
		}
		price := lot.PricePer20Kg
		if !(price > 0) || math.IsInf(price, 0) {
			if requirePrice {
				continue
			}
			price = 0
		}
		out = append(out, models.Lot{Weight: lot.Weight, PricePer20Kg: price})
	}
	return out
}

type settingsRequest struct {
	DefaultExpenses formNumber      `json:"defaultExpenses"`
	FontSize        models.FontSize `json:"fontSize"`
}
