package sheets

import (
	"context"

	"github.com/mamadbah2/commodity-costing/internal/domain/models"
)

const (
	// HistoryRange holds one row per saved calculation:
	// date, user, type, commodity, label, reference weight, wastage %, costing.
	HistoryRange = "History!A:H"
	dateFormat   = "2006-01-02"
)

// HistoryMirror appends saved calculations to the History sheet.
type HistoryMirror struct {
	repo Repository
}

// NewHistoryMirror wraps a sheet repository as a history mirror.
func NewHistoryMirror(repo Repository) *HistoryMirror {
	return &HistoryMirror{repo: repo}
}

// MirrorCalculation writes the calculation summary row.
func (m *HistoryMirror) MirrorCalculation(ctx context.Context, calc models.Calculation) error {
	return m.repo.WriteRow(ctx, HistoryRange, HistoryRow(calc))
}

// HistoryRow flattens a calculation into the History sheet columns.
func HistoryRow(calc models.Calculation) []interface{} {
	var referenceWeight, costing string
	switch {
	case calc.Mix != nil:
		referenceWeight = calc.Mix.TotalWeight
		costing = calc.Mix.AakhoPaloCosting
		if calc.Mix.HasRecleaning() {
			costing = calc.Mix.OneNumberCosting
		}
	case calc.Souff != nil:
		referenceWeight = calc.Souff.TotalPurchaseWeight
	case calc.Simple != nil:
		costing = calc.Simple.TotalCosting
	}

	return []interface{}{
		calc.CreatedAt.Format(dateFormat),
		calc.UserID,
		string(calc.Kind),
		string(calc.Commodity),
		calc.Label,
		referenceWeight,
		calc.WastagePercent(),
		costing,
	}
}
