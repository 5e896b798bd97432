/*
NAME
  config.go

DESCRIPTION
  config.go defines the pipeline's YAML-loadable tunables, following
  the deviceid.go precedent of decoding a bundled YAML document into a
  plain struct. Every field defaults to the value ECMA-130 specifies,
  so an empty or partial document still produces a conforming
  pipeline.

LICENSE
  This file is part of the coldcathode/efm module and is distributed
  under the terms of the project's own license; see LICENSE.
*/

// Package config holds the pipeline's tunable parameters, loadable
// from YAML and defaulting to ECMA-130 standard values.
package config

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Pipeline collects the pipeline's tunables as loadable values. The
// stages do not read a Pipeline; each uses its own package constants.
// Fields are independent: a document overriding one leaves the rest at
// their ECMA-130 defaults.
type Pipeline struct {
	// DelayDecode1Max/DelayDecodeMMax/DelayDecode2Max name the
	// decoder's three CIRC delay-line ranks; the delay banks always use
	// circ's built-in per-lane depth vectors, whatever these hold.
	DelayDecode1Max int `yaml:"delay_decode_1_max"`
	DelayDecodeMMax int `yaml:"delay_decode_m_max"`
	DelayDecode2Max int `yaml:"delay_decode_2_max"`

	// MaxGap bounds a correctable run of missing F2 sections.
	MaxGap int `yaml:"max_gap"`

	// MaxInternalBuffer bounds the steady-state correction buffer.
	MaxInternalBuffer int `yaml:"max_internal_buffer"`

	// LeadInSettleCount is the number of consecutive valid
	// chronological sections required to exit lead-in settling.
	LeadInSettleCount int `yaml:"lead_in_settle_count"`

	// SampleRate, BitDepth and Channels describe the PCM format.
	SampleRate int `yaml:"sample_rate"`
	BitDepth   int `yaml:"bit_depth"`
	Channels   int `yaml:"channels"`
}

// Default returns the ECMA-130-conforming Pipeline.
func Default() Pipeline {
	return Pipeline{
		MaxGap:            3,
		MaxInternalBuffer: 375,
		LeadInSettleCount: 5,
		SampleRate:        44100,
		BitDepth:          16,
		Channels:          2,
	}
}

// Load decodes a YAML document from r over the ECMA-130 defaults, so
// any field the document omits keeps its default value.
func Load(r io.Reader) (Pipeline, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Pipeline{}, err
	}
	return cfg, nil
}
