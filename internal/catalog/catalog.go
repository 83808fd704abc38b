// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog derives the consultation type catalog from the observation
// column of the record table.
package catalog

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/pdiddy/odonto-etl/internal/table"
	"github.com/pdiddy/odonto-etl/pkg/types"
)

// NoisePatterns match observation values that are really misplaced
// timestamps, times, mobile numbers, or alteration notes. They are searched
// anywhere in the value, not anchored unless the pattern says so.
var NoisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4} \d{2}:\d{2}$`),
	regexp.MustCompile(`^\d{2}:\d{2}$`),
	regexp.MustCompile(`\(\d{2}\)9\d{4}-\d{4}`),
	regexp.MustCompile(`Alterado`),
}

// IsNoise reports whether an observation value matches any noise pattern.
func IsNoise(observation string) bool {
	for _, re := range NoisePatterns {
		if re.MatchString(observation) {
			return true
		}
	}
	return false
}

// TypeID returns the consultation type identifier for label: a name-based
// SHA-1 UUID (version 5) in the DNS namespace. Existing rows were keyed this
// way, so the namespace must not change.
func TypeID(label string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(label))
}

// Annotated is a table row that survived the noise filter, paired with the
// identifier of its consultation type.
type Annotated struct {
	types.Record
	TypeID uuid.UUID
}

// Label is the observation text used as the consultation type label.
func (a Annotated) Label() string { return a.Observation }

// Result holds the filtered rows and the distinct consultation types.
type Result struct {
	// Rows are the retained rows in table order.
	Rows []Annotated

	// Types holds one entry per distinct label, in order of first appearance.
	Types []types.ConsultationType

	// Filtered counts rows removed as noise.
	Filtered int
}

// Derive filters noise rows out of t, assigns each remaining row its type
// identifier, and collects the distinct types keeping the first occurrence.
func Derive(t *table.Table) Result {
	var res Result
	for _, rec := range t.Records() {
		if IsNoise(rec.Observation) {
			res.Filtered++
			continue
		}
		res.Rows = append(res.Rows, Annotated{Record: rec, TypeID: TypeID(rec.Observation)})
	}

	all := lo.Map(res.Rows, func(a Annotated, _ int) types.ConsultationType {
		return types.ConsultationType{ID: a.TypeID, Label: a.Label(), Excluded: false}
	})
	res.Types = lo.UniqBy(all, func(ct types.ConsultationType) uuid.UUID { return ct.ID })
	return res
}
