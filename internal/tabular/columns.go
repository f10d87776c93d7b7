package tabular

import (
	"strings"
)

// Field is a logical player attribute a catalog column can carry
type Field string

const (
	FieldID                 Field = "id"
	FieldName               Field = "name"
	FieldRole               Field = "role"
	FieldTeam               Field = "team"
	FieldBaseValue          Field = "baseValue"
	FieldBaseValueAlt       Field = "baseValueAlt"
	FieldTrendDelta         Field = "trendDelta"
	FieldBaseValueMarket    Field = "baseValueMarket"
	FieldBaseValueAltMarket Field = "baseValueAltMarket"
	FieldTrendDeltaMarket   Field = "trendDeltaMarket"
	FieldMeritValue         Field = "meritValue"
	FieldMeritValueMarket   Field = "meritValueMarket"
	FieldTier               Field = "tier"
)

// EssentialFields must be present for a catalog to be useful. Missing ones
// are reported as warnings; parsing carries on with defaults.
var EssentialFields = []Field{FieldName, FieldRole, FieldTeam, FieldBaseValue}

// headerAliases maps normalized header labels to fields. Labels are the
// Italian names used by the usual quotation sheets plus English equivalents.
var headerAliases = map[string]Field{
	"id":      FieldID,
	"r":       FieldRole,
	"ruolo":   FieldRole,
	"role":    FieldRole,
	"nome":    FieldName,
	"name":    FieldName,
	"squadra": FieldTeam,
	"team":    FieldTeam,
	"club":    FieldTeam,
	"qt.a":    FieldBaseValue,
	"qta":     FieldBaseValue,
	"qt.i":    FieldBaseValueAlt,
	"qti":     FieldBaseValueAlt,
	"diff.":   FieldTrendDelta,
	"diff":    FieldTrendDelta,
	"qt.am":   FieldBaseValueMarket,
	"qt.im":   FieldBaseValueAltMarket,
	"diff.m":  FieldTrendDeltaMarket,
	"diffm":   FieldTrendDeltaMarket,
	"fvm":     FieldMeritValue,
	"fvmm":    FieldMeritValueMarket,
	"fascia":  FieldTier,
	"tier":    FieldTier,
}

// ColumnIndex maps fields to zero-based column positions
type ColumnIndex map[Field]int

// NormalizeHeader lower-cases a header label and removes all whitespace
func NormalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), ""))
}

// BuildColumnIndex maps recognised header labels to their positions.
// Unknown headers are ignored; when a label repeats, the first column wins.
func BuildColumnIndex(headers []string) ColumnIndex {
	idx := make(ColumnIndex)
	for i, h := range headers {
		field, ok := headerAliases[NormalizeHeader(h)]
		if !ok {
			continue
		}
		if _, seen := idx[field]; !seen {
			idx[field] = i
		}
	}
	return idx
}

// Missing lists the essential fields the index does not cover
func (c ColumnIndex) Missing() []Field {
	var missing []Field
	for _, f := range EssentialFields {
		if _, ok := c[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

func (c ColumnIndex) cell(row RawRow, f Field) Cell {
	i, ok := c[f]
	if !ok {
		return Cell{Kind: CellEmpty}
	}
	return row.Cell(i)
}
