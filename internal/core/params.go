package core

import (
	"strconv"
	"strings"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeBool denotes boolean parameters.
	ParamTypeBool ParamType = "bool"
)

// Parameter describes a single tunable value exposed by a phase. Key matches
// the FromMap key that overrides it.
type Parameter struct {
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Type        ParamType `json:"type"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
}

// ParameterGroup clusters the parameters of one pipeline phase.
type ParameterGroup struct {
	Name    string      `json:"name"`
	Params  []Parameter `json:"params"`
	Summary string      `json:"summary,omitempty"`
}

// ParameterSnapshot captures the effective configuration of a generation run.
type ParameterSnapshot struct {
	Groups []ParameterGroup `json:"groups"`
}

// IntParam builds an integer Parameter.
func IntParam(key, label string, v int, desc string) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.Itoa(v), Description: desc}
}

// FloatParam builds a floating point Parameter.
func FloatParam(key, label string, v float64, desc string) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeFloat, Value: strconv.FormatFloat(v, 'g', -1, 64), Description: desc}
}

// BoolParam builds a boolean Parameter.
func BoolParam(key, label string, v bool, desc string) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeBool, Value: strconv.FormatBool(v), Description: desc}
}

// String renders the snapshot as an indented key=value listing.
func (s ParameterSnapshot) String() string {
	var b strings.Builder
	for _, g := range s.Groups {
		b.WriteString(g.Name)
		b.WriteString(":\n")
		for _, p := range g.Params {
			b.WriteString("  ")
			b.WriteString(p.Key)
			b.WriteString("=")
			b.WriteString(p.Value)
			if p.Description != "" {
				b.WriteString("  # ")
				b.WriteString(p.Description)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Lookup finds a parameter value by key.
func (s ParameterSnapshot) Lookup(key string) (string, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p.Value, true
			}
		}
	}
	return "", false
}
