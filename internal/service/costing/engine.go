// Package costing computes purchase costing and wastage for commodity lots.
// Every function is pure: results depend only on the arguments.
package costing

import (
	"github.com/mamadbah2/commodity-costing/internal/domain/models"
)

// unitWeight is the kg unit that purchase prices are quoted against.
const unitWeight = 20.0

const (
	msgInvalidNumbers    = "Please fill all fields with valid numbers"
	msgInvalidExpenses   = "Invalid default expenses"
	msgNoPurchases       = "Please provide at least one purchase"
	msgZeroWeight        = "Total weight cannot be zero"
	msgZeroPurchase      = "Total purchase weight cannot be zero"
	msgTaiyarRequired    = "Taiyar Weight is required"
	msgRecleaningTooHigh = "recleaning weight must be less than taiyar weight"
	msgNotFinite         = "calculation produced a non-finite value"
)

// SimpleInput holds the parameters of a single-price costing.
type SimpleInput struct {
	PurchasePrice   float64
	WastagePercent  float64
	IncludeExpenses bool
}

// MixInput holds the parameters of a combined multi-lot costing. Recleaning
// is applied only when both recleaning fields are finite and positive.
type MixInput struct {
	Lots             []models.Lot
	TaiyarWeight     float64
	RecleaningWeight float64
	RecleaningPrice  float64
}

// SouffInput holds the parameters of a souff wastage calculation.
type SouffInput struct {
	Lots  []models.Lot
	Boxes models.BoxWeights
}

// ComputeSimple adds optional expenses to the purchase price and loads the
// wastage percentage on top of the subtotal.
func ComputeSimple(in SimpleInput, expenses float64) (models.SimpleResult, error) {
	if !isFinite(in.PurchasePrice) || !isFinite(in.WastagePercent) {
		return models.SimpleResult{}, invalid(msgInvalidNumbers)
	}

	exp := 0.0
	if in.IncludeExpenses {
		if !isFinite(expenses) {
			return models.SimpleResult{}, invalid(msgInvalidExpenses)
		}
		exp = expenses
	}

	subtotal := in.PurchasePrice + exp
	wastageAmount := subtotal * (in.WastagePercent / 100)
	totalCosting := subtotal + wastageAmount

	if !allFinite(subtotal, totalCosting) {
		return models.SimpleResult{}, invalid(msgNotFinite)
	}

	return models.SimpleResult{
		PurchasePrice:   fixed(in.PurchasePrice),
		Expenses:        fixed(exp),
		IncludeExpenses: in.IncludeExpenses,
		TotalCosting:    fixed(totalCosting),
		WastagePercent:  fixed(in.WastagePercent),
	}, nil
}

// ComputeCombined derives the weighted average purchase price of the lots,
// rescales the cost basis onto the cleaned (taiyar) weight and, when a
// recleaning split is given, prices the remaining 1 Number grade.
//
// Lots with a weight but no usable price still count towards the total
// weight, which lowers the average price.
func ComputeCombined(in MixInput, expenses float64) (models.MixResult, error) {
	if !isFinite(expenses) {
		return models.MixResult{}, invalid(msgInvalidExpenses)
	}
	if len(in.Lots) == 0 {
		return models.MixResult{}, empty(msgNoPurchases)
	}

	var totalWeight, weightedSum float64
	priced := 0
	for _, lot := range in.Lots {
		if !isPositive(lot.Weight) {
			continue
		}
		totalWeight += lot.Weight
		if isPositive(lot.PricePer20Kg) {
			weightedSum += (lot.Weight * lot.PricePer20Kg) / unitWeight
			priced++
		}
	}

	if totalWeight == 0 {
		return models.MixResult{}, zeroWeight(msgZeroWeight)
	}
	if priced == 0 {
		return models.MixResult{}, empty(msgNoPurchases)
	}

	avgPrice := (weightedSum / totalWeight) * unitWeight
	beforeCleaning := avgPrice + expenses

	taiyar := in.TaiyarWeight
	if !isPositive(taiyar) {
		return models.MixResult{}, invalid(msgTaiyarRequired)
	}

	wastage := totalWeight - taiyar
	wastagePercent := (wastage / totalWeight) * 100
	aakhoPalo := (((beforeCleaning * totalWeight) / unitWeight) / taiyar) * unitWeight

	if !allFinite(totalWeight, avgPrice, beforeCleaning, wastage, wastagePercent, aakhoPalo) {
		return models.MixResult{}, invalid(msgNotFinite)
	}

	result := models.MixResult{
		TotalWeight:           fixed(totalWeight),
		AvgPrice:              fixed(avgPrice),
		BeforeCleaningCosting: fixed(beforeCleaning),
		TaiyarWeight:          fixed(taiyar),
		WastageWeight:         fixed(wastage),
		WastagePercent:        fixed(wastagePercent),
		AakhoPaloCosting:      fixed(aakhoPalo),
	}

	if !isPositive(in.RecleaningWeight) || !isPositive(in.RecleaningPrice) {
		return result, nil
	}

	if in.RecleaningWeight >= taiyar {
		return models.MixResult{}, invalid(msgRecleaningTooHigh)
	}

	totalCostingAmount := (aakhoPalo * taiyar) / unitWeight
	recleaningAmount := (in.RecleaningPrice * in.RecleaningWeight) / unitWeight
	oneNumber := ((totalCostingAmount - recleaningAmount) / (taiyar - in.RecleaningWeight)) * unitWeight

	if !isFinite(oneNumber) {
		return models.MixResult{}, invalid(msgNotFinite)
	}

	result.RecleaningWeight = fixed(in.RecleaningWeight)
	result.RecleaningPrice = fixed(in.RecleaningPrice)
	result.OneNumberCosting = fixed(oneNumber)

	return result, nil
}

// ComputeSouff measures wastage between the purchased weight and the sum of
// the graded box weights. No costing is performed.
func ComputeSouff(in SouffInput) (models.SouffResult, error) {
	if len(in.Lots) == 0 {
		return models.SouffResult{}, empty(msgNoPurchases)
	}

	var totalPurchase float64
	for _, lot := range in.Lots {
		// Only positive weights count.
		if isPositive(lot.Weight) {
			totalPurchase += lot.Weight
		}
	}
	if totalPurchase == 0 {
		return models.SouffResult{}, zeroWeight(msgZeroPurchase)
	}

	boxes := NormalizeBoxes(in.Boxes)
	totalTaiyar := boxes.Total()
	wastage := totalPurchase - totalTaiyar
	wastagePercent := (wastage / totalPurchase) * 100

	if !allFinite(totalPurchase, totalTaiyar, wastage, wastagePercent) {
		return models.SouffResult{}, invalid(msgNotFinite)
	}

	return models.SouffResult{
		TotalPurchaseWeight: fixed(totalPurchase),
		Boxes:               boxes,
		TotalTaiyarWeight:   fixed(totalTaiyar),
		WastageWeight:       fixed(wastage),
		WastagePercent:      fixed(wastagePercent),
	}, nil
}

// NormalizeBoxes replaces every non-finite compartment weight with zero.
func NormalizeBoxes(b models.BoxWeights) models.BoxWeights {
	return models.BoxWeights{
		JadoMal:         orZero(b.JadoMal),
		Recleaning:      orZero(b.Recleaning),
		RecleaningBarik: orZero(b.RecleaningBarik),
		MiniJadoMal:     orZero(b.MiniJadoMal),
		OneNumberBarik:  orZero(b.OneNumberBarik),
		TwoNumberBarik:  orZero(b.TwoNumberBarik),
		Surbhi:          orZero(b.Surbhi),
		KachoJadoMal:    orZero(b.KachoJadoMal),
	}
}

func orZero(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return v
}
