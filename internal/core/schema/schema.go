// Package schema names the spreadsheet columns each loader reads
// Defaults match the production exports; a YAML file may override any subset
package schema

import (
	"os"
	"strings"

	perr "telejoin/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

// Telemetry names the telemetry columns
type Telemetry struct {
	Date    string `yaml:"date"`
	Address string `yaml:"address"`
}

// Visits names the visit columns
type Visits struct {
	StartDate string `yaml:"start_date"`
	Reference string `yaml:"reference"`
	Status    string `yaml:"status"`
	Owner     string `yaml:"owner"`
}

// Schema is the full column mapping plus the completed-status marker
type Schema struct {
	Telemetry       Telemetry `yaml:"telemetry"`
	Visits          Visits    `yaml:"visits"`
	CompletedMarker string    `yaml:"completed_marker"`
}

// Default returns the column names used by the telemetry and activity exports
func Default() Schema {
	return Schema{
		Telemetry: Telemetry{
			Date:    "Data Comunicação",
			Address: "Endereços",
		},
		Visits: Visits{
			StartDate: "Data de Início",
			Reference: "Referente a",
			Status:    "Status da Atividade",
			Owner:     "Proprietário",
		},
		CompletedMarker: "conclu",
	}
}

// Columns returns the telemetry columns in load order
func (t Telemetry) Columns() []string { return []string{t.Date, t.Address} }

// Columns returns the visit columns in load order
func (v Visits) Columns() []string { return []string{v.StartDate, v.Reference, v.Status, v.Owner} }

// Load reads a YAML override file on top of Default; an empty path returns Default
func Load(path string) (Schema, error) {
	s := Default()
	if strings.TrimSpace(path) == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read schema %s", path)
	}
	return Parse(raw)
}

// Parse decodes YAML overrides on top of Default and validates the result
func Parse(raw []byte) (Schema, error) {
	var over Schema
	if err := yaml.Unmarshal(raw, &over); err != nil {
		return Schema{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid schema yaml")
	}
	s := Default().merge(over)
	if err := s.Validate(); err != nil {
		return Schema{}, err
	}
	return s, nil
}

// Validate reports the first blank column name
func (s Schema) Validate() error {
	fields := []struct{ name, val string }{
		{"telemetry.date", s.Telemetry.Date},
		{"telemetry.address", s.Telemetry.Address},
		{"visits.start_date", s.Visits.StartDate},
		{"visits.reference", s.Visits.Reference},
		{"visits.status", s.Visits.Status},
		{"visits.owner", s.Visits.Owner},
		{"completed_marker", s.CompletedMarker},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.val) == "" {
			return perr.WithField(perr.InvalidArgf("schema %s must not be blank", f.name), f.name)
		}
	}
	return nil
}

func (s Schema) merge(o Schema) Schema {
	pick := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	pick(&s.Telemetry.Date, o.Telemetry.Date)
	pick(&s.Telemetry.Address, o.Telemetry.Address)
	pick(&s.Visits.StartDate, o.Visits.StartDate)
	pick(&s.Visits.Reference, o.Visits.Reference)
	pick(&s.Visits.Status, o.Visits.Status)
	pick(&s.Visits.Owner, o.Visits.Owner)
	pick(&s.CompletedMarker, o.CompletedMarker)
	return s
}
