// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify groups extracted report lines into appointment records.
//
// Every ChunkSize consecutive lines form one record. Each line is offered to
// the field rules in declaration order and lands in the first field that is
// still empty and whose pattern matches; a line no rule accepts is dropped.
// The observation rule accepts almost any short line, so a chunk whose lines
// are out of the usual order can misplace values. No attempt is made to
// repair that: the report layout is the contract.
package classify

import (
	"regexp"

	"github.com/samber/lo"

	"github.com/pdiddy/odonto-etl/pkg/types"
)

// rule pairs a field with the pattern a line must match to fill it. When
// exclude is set, a line equal to it never matches.
type rule struct {
	field   types.Field
	pattern *regexp.Regexp
	exclude string
}

func (r rule) match(line string) bool {
	if r.exclude != "" && line == r.exclude {
		return false
	}
	return r.pattern.MatchString(line)
}

// Classifier assigns report lines to record fields.
type Classifier struct {
	rules     []rule
	chunkSize int
}

// Result holds the records of one document together with the number of
// lines no field accepted.
type Result struct {
	Records []types.Record
	Dropped int
}

// New builds a Classifier for the given settings. A zero chunk size or empty
// professional name falls back to the defaults.
func New(cfg types.ClassifyConfig) *Classifier {
	size := cfg.ChunkSize
	if size <= 0 {
		size = types.DefaultChunkSize
	}
	professional := cfg.Professional
	if professional == "" {
		professional = types.DefaultProfessional
	}
	return &Classifier{
		rules:     buildRules(professional),
		chunkSize: size,
	}
}

func buildRules(professional string) []rule {
	quoted := regexp.QuoteMeta(professional)
	return []rule{
		{field: types.FieldDate, pattern: regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)},
		{field: types.FieldTimeRange, pattern: regexp.MustCompile(`^\d{2}:\d{2} - \d{2}:\d{2}$`)},
		{field: types.FieldPatient, pattern: regexp.MustCompile(`^.+ - \d{6}$`)},
		{field: types.FieldPhone, pattern: regexp.MustCompile(`^\(\d{2}\)\d{4,5}-\d{4}$`)},
		{field: types.FieldAttendanceType, pattern: regexp.MustCompile(`^(Avaliação|Retorno|Consulta|Compromisso)`)},
		{field: types.FieldObservation, pattern: regexp.MustCompile(`^.{1,100}$`), exclude: professional},
		{field: types.FieldProfessional, pattern: regexp.MustCompile(`^` + quoted + `$`)},
		{field: types.FieldRegistrationDate, pattern: regexp.MustCompile(`^\d{2}/\d{2}/\d{4} \d{2}:\d{2}$`)},
		{field: types.FieldAlterationNote, pattern: regexp.MustCompile(`^Alterado em \d{2}/\d{2}/\d{4}$`)},
		{field: types.FieldAlterationTime, pattern: regexp.MustCompile(`^\d{2}:\d{2}$`)},
	}
}

// ChunkSize returns the number of lines per record.
func (c *Classifier) ChunkSize() int { return c.chunkSize }

// Classify splits lines into chunks and returns one record per chunk. A
// trailing partial chunk still yields a record, with the missing fields left
// empty.
func (c *Classifier) Classify(lines []string) []types.Record {
	return c.ClassifyDocument("", lines).Records
}

// ClassifyDocument classifies the lines of one document and stamps each
// record with source and its chunk index.
func (c *Classifier) ClassifyDocument(source string, lines []string) Result {
	var res Result
	for i, chunk := range lo.Chunk(lines, c.chunkSize) {
		rec, dropped := c.Record(chunk)
		rec.Source = source
		rec.Chunk = i
		res.Records = append(res.Records, rec)
		res.Dropped += dropped
	}
	return res
}

// Record fills one record from a chunk of lines and returns it with the
// number of lines that found no field.
func (c *Classifier) Record(chunk []string) (types.Record, int) {
	var (
		rec     types.Record
		filled  [types.NumFields]bool
		dropped int
	)
	for _, line := range chunk {
		placed := false
		for _, r := range c.rules {
			if filled[r.field] || !r.match(line) {
				continue
			}
			rec.Set(r.field, line)
			filled[r.field] = true
			placed = true
			break
		}
		if !placed {
			dropped++
		}
	}
	return rec, dropped
}

// Match reports the first field whose pattern accepts line, ignoring whether
// the field is already filled.
func (c *Classifier) Match(line string) (types.Field, bool) {
	for _, r := range c.rules {
		if r.match(line) {
			return r.field, true
		}
	}
	return 0, false
}
