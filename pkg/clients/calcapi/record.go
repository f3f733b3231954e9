package calcapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mamadbah2/commodity-costing/internal/domain/models"
)

// remoteID accepts both numeric and string identifiers.
type remoteID string

func (id *remoteID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = remoteID(s)
		return nil
	}
	*id = remoteID(b)
	return nil
}

type remoteRecord struct {
	ID        remoteID        `json:"id"`
	Type      string          `json:"type"`
	Commodity *string         `json:"commodity"`
	Data      json.RawMessage `json:"data"`
	CreatedAt string          `json:"created_at"`
	Timestamp string          `json:"timestamp"`
}

// recordMeta holds the fields stored next to the result inside data.
type recordMeta struct {
	NameVakal string       `json:"nameVakal"`
	Purchases []models.Lot `json:"purchases"`
}

func (r remoteRecord) kind() models.CalculationKind {
	commodity := ""
	if r.Commodity != nil {
		commodity = *r.Commodity
	}
	if kind := models.CalculationKind(strings.TrimSpace(r.Type)); kind.Valid() {
		return kind
	}
	switch {
	case commodity == string(models.CommoditySouff):
		return models.KindSouff
	case commodity != "":
		return models.KindMix
	default:
		return models.KindSimple
	}
}

func (r remoteRecord) toModel(userID string) (models.Calculation, error) {
	calc := models.Calculation{
		ID:     string(r.ID),
		UserID: userID,
		Kind:   r.kind(),
	}
	if r.Commodity != nil {
		calc.Commodity = models.Commodity(*r.Commodity)
	}

	created := r.CreatedAt
	if created == "" {
		created = r.Timestamp
	}
	calc.CreatedAt = parseTimestamp(created)

	if len(r.Data) == 0 || bytes.Equal(r.Data, []byte("null")) {
		return calc, nil
	}

	var meta recordMeta
	if err := json.Unmarshal(r.Data, &meta); err != nil {
		return models.Calculation{}, fmt.Errorf("decode calculation %s: %w", r.ID, err)
	}
	calc.Label = meta.NameVakal
	calc.Purchases = meta.Purchases

	var err error
	switch calc.Kind {
	case models.KindSimple:
		calc.Simple = new(models.SimpleResult)
		err = json.Unmarshal(r.Data, calc.Simple)
	case models.KindMix:
		calc.Mix = new(models.MixResult)
		err = json.Unmarshal(r.Data, calc.Mix)
	case models.KindSouff:
		calc.Souff = new(models.SouffResult)
		err = json.Unmarshal(r.Data, calc.Souff)
	}
	if err != nil {
		return models.Calculation{}, fmt.Errorf("decode %s result %s: %w", calc.Kind, r.ID, err)
	}

	return calc, nil
}

// encodeData flattens the result into the data object the API stores,
// alongside the label and purchases.
func encodeData(calc models.Calculation) (map[string]any, error) {
	var result any
	switch calc.Kind {
	case models.KindSimple:
		if calc.Simple != nil {
			result = calc.Simple
		}
	case models.KindMix:
		if calc.Mix != nil {
			result = calc.Mix
		}
	case models.KindSouff:
		if calc.Souff != nil {
			result = calc.Souff
		}
	}

	data := map[string]any{}
	if result != nil {
		raw, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("encode %s result: %w", calc.Kind, err)
		}
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("encode %s result: %w", calc.Kind, err)
		}
	}

	data["nameVakal"] = calc.Label
	if len(calc.Purchases) > 0 {
		data["purchases"] = calc.Purchases
	}
	if calc.Commodity != "" {
		data["commodityKey"] = calc.Commodity
	}
	return data, nil
}
