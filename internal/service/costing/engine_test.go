package costing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/commodity-costing/internal/domain/models"
)

func TestComputeSimple_WithExpenses(t *testing.T) {
	result, err := ComputeSimple(SimpleInput{PurchasePrice: 100, WastagePercent: 10, IncludeExpenses: true}, 50)
	require.NoError(t, err)

	require.Equal(t, "100.00", result.PurchasePrice)
	require.Equal(t, "50.00", result.Expenses)
	require.True(t, result.IncludeExpenses)
	require.Equal(t, "165.00", result.TotalCosting)
	require.Equal(t, "10.00", result.WastagePercent)
}

func TestComputeSimple_ExpensesExcluded(t *testing.T) {
	cases := []struct {
		price, wastage float64
	}{
		{100, 10},
		{4200, 3.5},
		{1234.56, 0},
		{87.5, 125},
	}

	for _, tc := range cases {
		result, err := ComputeSimple(SimpleInput{PurchasePrice: tc.price, WastagePercent: tc.wastage}, 150)
		require.NoError(t, err)
		require.Equal(t, "0.00", result.Expenses)
		require.Equal(t, fixed(tc.price*(1+tc.wastage/100)), result.TotalCosting)
	}
}

func TestComputeSimple_RejectsNonFinite(t *testing.T) {
	for _, in := range []SimpleInput{
		{PurchasePrice: math.NaN(), WastagePercent: 10},
		{PurchasePrice: 100, WastagePercent: math.NaN()},
		{PurchasePrice: math.Inf(1), WastagePercent: 10},
	} {
		_, err := ComputeSimple(in, 150)
		require.ErrorIs(t, err, ErrInvalidInput)
		require.EqualError(t, err, "Please fill all fields with valid numbers")
	}
}

func TestComputeCombined_SingleLot(t *testing.T) {
	in := MixInput{
		Lots:         []models.Lot{{Weight: 1000, PricePer20Kg: 4200}},
		TaiyarWeight: 900,
	}

	result, err := ComputeCombined(in, 150)
	require.NoError(t, err)

	require.Equal(t, "1000.00", result.TotalWeight)
	require.Equal(t, "4200.00", result.AvgPrice)
	require.Equal(t, "4350.00", result.BeforeCleaningCosting)
	require.Equal(t, "900.00", result.TaiyarWeight)
	require.Equal(t, "100.00", result.WastageWeight)
	require.Equal(t, "10.00", result.WastagePercent)
	require.Equal(t, "4833.33", result.AakhoPaloCosting)
	require.False(t, result.HasRecleaning())
	require.Empty(t, result.RecleaningWeight)
}

func TestComputeCombined_WeightedAverage(t *testing.T) {
	in := MixInput{
		Lots: []models.Lot{
			{Weight: 600, PricePer20Kg: 4000},
			{Weight: 400, PricePer20Kg: 4500},
		},
		TaiyarWeight: 950,
	}

	result, err := ComputeCombined(in, 0)
	require.NoError(t, err)
	require.Equal(t, "4200.00", result.AvgPrice)
	require.Equal(t, "5.00", result.WastagePercent)

	swapped := MixInput{Lots: []models.Lot{in.Lots[1], in.Lots[0]}, TaiyarWeight: 950}
	again, err := ComputeCombined(swapped, 0)
	require.NoError(t, err)
	require.Equal(t, result, again)
}

func TestComputeCombined_WeightOnlyLotLowersAverage(t *testing.T) {
	in := MixInput{
		Lots: []models.Lot{
			{Weight: 500, PricePer20Kg: 4000},
			{Weight: 500, PricePer20Kg: math.NaN()},
		},
		TaiyarWeight: 900,
	}

	result, err := ComputeCombined(in, 0)
	require.NoError(t, err)
	require.Equal(t, "1000.00", result.TotalWeight)
	require.Equal(t, "2000.00", result.AvgPrice)
}

func TestComputeCombined_Recleaning(t *testing.T) {
	in := MixInput{
		Lots:             []models.Lot{{Weight: 1000, PricePer20Kg: 4200}},
		TaiyarWeight:     900,
		RecleaningWeight: 100,
		RecleaningPrice:  2000,
	}

	result, err := ComputeCombined(in, 150)
	require.NoError(t, err)
	require.True(t, result.HasRecleaning())
	require.Equal(t, "100.00", result.RecleaningWeight)
	require.Equal(t, "2000.00", result.RecleaningPrice)
	// (217500 - 10000) / 800 * 20
	require.Equal(t, "5187.50", result.OneNumberCosting)
}

func TestComputeCombined_RecleaningIgnoredWhenIncomplete(t *testing.T) {
	in := MixInput{
		Lots:             []models.Lot{{Weight: 1000, PricePer20Kg: 4200}},
		TaiyarWeight:     900,
		RecleaningWeight: 100,
		RecleaningPrice:  math.NaN(),
	}

	result, err := ComputeCombined(in, 150)
	require.NoError(t, err)
	require.False(t, result.HasRecleaning())
}

func TestComputeCombined_RecleaningMustBeBelowTaiyar(t *testing.T) {
	for _, weight := range []float64{900, 950} {
		in := MixInput{
			Lots:             []models.Lot{{Weight: 1000, PricePer20Kg: 4200}},
			TaiyarWeight:     900,
			RecleaningWeight: weight,
			RecleaningPrice:  2000,
		}

		_, err := ComputeCombined(in, 150)
		require.ErrorIs(t, err, ErrInvalidInput)
		require.EqualError(t, err, "recleaning weight must be less than taiyar weight")
	}
}

func TestComputeCombined_ValidationErrors(t *testing.T) {
	lots := []models.Lot{{Weight: 1000, PricePer20Kg: 4200}}

	tests := []struct {
		name     string
		in       MixInput
		expenses float64
		want     error
		message  string
	}{
		{"no lots", MixInput{TaiyarWeight: 900}, 150, ErrEmptyInput, "Please provide at least one purchase"},
		{"zero weight", MixInput{Lots: []models.Lot{{Weight: 0, PricePer20Kg: 4200}}, TaiyarWeight: 900}, 150, ErrZeroWeight, "Total weight cannot be zero"},
		{"no priced lot", MixInput{Lots: []models.Lot{{Weight: 500}}, TaiyarWeight: 400}, 150, ErrEmptyInput, "Please provide at least one purchase"},
		{"expenses nan", MixInput{Lots: lots, TaiyarWeight: 900}, math.NaN(), ErrInvalidInput, "Invalid default expenses"},
		{"taiyar missing", MixInput{Lots: lots, TaiyarWeight: math.NaN()}, 150, ErrInvalidInput, "Taiyar Weight is required"},
		{"taiyar zero", MixInput{Lots: lots}, 150, ErrInvalidInput, "Taiyar Weight is required"},
		{"taiyar negative", MixInput{Lots: lots, TaiyarWeight: -5}, 150, ErrInvalidInput, "Taiyar Weight is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ComputeCombined(tc.in, tc.expenses)
			require.ErrorIs(t, err, tc.want)
			require.EqualError(t, err, tc.message)
			require.Equal(t, models.MixResult{}, result)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
		})
	}
}

func TestComputeSouff(t *testing.T) {
	in := SouffInput{
		Lots:  []models.Lot{{Weight: 500}},
		Boxes: models.BoxWeights{JadoMal: 400, Recleaning: 50},
	}

	result, err := ComputeSouff(in)
	require.NoError(t, err)
	require.Equal(t, "500.00", result.TotalPurchaseWeight)
	require.Equal(t, "450.00", result.TotalTaiyarWeight)
	require.Equal(t, "50.00", result.WastageWeight)
	require.Equal(t, "10.00", result.WastagePercent)
	require.Equal(t, 400.0, result.Boxes.JadoMal)
}

func TestComputeSouff_NonFiniteBoxesCountAsZero(t *testing.T) {
	in := SouffInput{
		Lots: []models.Lot{{Weight: 300, PricePer20Kg: math.NaN()}, {Weight: 200}},
		Boxes: models.BoxWeights{
			JadoMal:      300,
			Surbhi:       math.NaN(),
			KachoJadoMal: math.Inf(1),
			MiniJadoMal:  100,
		},
	}

	result, err := ComputeSouff(in)
	require.NoError(t, err)
	require.Equal(t, "400.00", result.TotalTaiyarWeight)
	require.Equal(t, "20.00", result.WastagePercent)
	require.Zero(t, result.Boxes.Surbhi)
	require.Zero(t, result.Boxes.KachoJadoMal)
}

func TestComputeSouff_SkipsNegativeWeights(t *testing.T) {
	in := SouffInput{
		Lots:  []models.Lot{{Weight: 500}, {Weight: -100}},
		Boxes: models.BoxWeights{JadoMal: 450},
	}

	result, err := ComputeSouff(in)
	require.NoError(t, err)
	require.Equal(t, "500.00", result.TotalPurchaseWeight)
	require.Equal(t, "10.00", result.WastagePercent)
}

func TestComputeSouff_ValidationErrors(t *testing.T) {
	_, err := ComputeSouff(SouffInput{})
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = ComputeSouff(SouffInput{Lots: []models.Lot{{Weight: 0}, {Weight: math.NaN()}}})
	require.ErrorIs(t, err, ErrZeroWeight)
	require.EqualError(t, err, "Total purchase weight cannot be zero")
}

func TestWastagePercentMatchesReferenceWeight(t *testing.T) {
	mix, err := ComputeCombined(MixInput{
		Lots:         []models.Lot{{Weight: 800, PricePer20Kg: 3900}, {Weight: 450, PricePer20Kg: 4100}},
		TaiyarWeight: 1111,
	}, 150)
	require.NoError(t, err)
	require.Equal(t, fixed((1250.0-1111.0)/1250.0*100), mix.WastagePercent)

	souff, err := ComputeSouff(SouffInput{
		Lots:  []models.Lot{{Weight: 730}},
		Boxes: models.BoxWeights{JadoMal: 600, Surbhi: 55},
	})
	require.NoError(t, err)
	require.Equal(t, fixed((730.0-655.0)/730.0*100), souff.WastagePercent)
}

func TestComputationsAreRepeatable(t *testing.T) {
	mixIn := MixInput{
		Lots:             []models.Lot{{Weight: 333.3, PricePer20Kg: 4111.1}, {Weight: 777.7, PricePer20Kg: 3999.9}},
		TaiyarWeight:     1000.1,
		RecleaningWeight: 123.4,
		RecleaningPrice:  2222.2,
	}
	first, err := ComputeCombined(mixIn, 147.5)
	require.NoError(t, err)
	second, err := ComputeCombined(mixIn, 147.5)
	require.NoError(t, err)
	require.Equal(t, first, second)

	s1, err := ComputeSimple(SimpleInput{PurchasePrice: 4321.09, WastagePercent: 2.75, IncludeExpenses: true}, 150)
	require.NoError(t, err)
	s2, err := ComputeSimple(SimpleInput{PurchasePrice: 4321.09, WastagePercent: 2.75, IncludeExpenses: true}, 150)
	require.NoError(t, err)
	require.Equal(t, s1, s2)
}
