/*
NAME
  concealment.go

DESCRIPTION
  concealment.go implements §4.10 audio concealment: linear
  interpolation of erased samples from their same-channel neighbours,
  or mute when no valid neighbour exists. A Concealer carries the last
  known-good sample per channel across section boundaries so frame 0 of
  a section can look back into the previous section's trailing samples
  (SPEC_FULL §4.13).

LICENSE
  This file is part of the coldcathode/efm module and is distributed
  under the terms of the project's own license; see LICENSE.
*/

package audio

import "github.com/coldcathode/efm/section"

// Stats accumulates the concealment counters (§4.10), in mono-sample
// units.
type Stats struct {
	ValidSamples     int
	ConcealedSamples int
	SilencedSamples  int
}

// Concealer conceals erasures across a stream of AudioSections,
// carrying each channel's last known-good sample forward so the first
// frame of a section can resolve a preceding-sample lookup.
type Concealer struct {
	lastGood      [2]int16
	lastGoodKnown [2]bool
	Stats         Stats
}

// NewConcealer builds a Concealer with no prior known-good samples.
func NewConcealer() *Concealer { return &Concealer{} }

// ProcessSection conceals erasures in sec in place (on a copy) and
// updates the cross-section carry state from the section's trailing
// samples.
func (c *Concealer) ProcessSection(sec section.AudioSection) section.AudioSection {
	out := sec
	for i := range out.Frames {
		f := &out.Frames[i]
		for j := range f.Samples {
			if f.Flags[j] == 0 {
				c.Stats.ValidSamples++
				continue
			}
			preceding, precedingOK := c.preceding(out, i, j)
			following, followingOK := c.following(out, i, j)
			if precedingOK && followingOK {
				f.Samples[j] = mean(preceding, following)
				c.Stats.ConcealedSamples++
			} else {
				f.Samples[j] = 0
				c.Stats.SilencedSamples++
			}
		}
	}

	last := out.Frames[len(out.Frames)-1]
	for ch := 0; ch < 2; ch++ {
		j := 10 + ch
		if last.Flags[j] == 0 {
			c.lastGood[ch] = last.Samples[j]
			c.lastGoodKnown[ch] = true
		}
	}
	return out
}

// preceding resolves the preceding-good-sample lookup for an erased
// sample at frame i, position j (§4.10).
func (c *Concealer) preceding(sec section.AudioSection, i, j int) (int16, bool) {
	if j >= 2 {
		if sec.Frames[i].Flags[j-2] == 0 {
			return sec.Frames[i].Samples[j-2], true
		}
		return 0, false
	}
	channel := j % 2
	if c.lastGoodKnown[channel] {
		return c.lastGood[channel], true
	}
	return 0, false
}

// following resolves the following-good-sample lookup for an erased
// sample at frame i, position j (§4.10).
func (c *Concealer) following(sec section.AudioSection, i, j int) (int16, bool) {
	if j <= 9 {
		if sec.Frames[i].Flags[j+2] == 0 {
			return sec.Frames[i].Samples[j+2], true
		}
		return 0, false
	}
	if i+2 < len(sec.Frames) && sec.Frames[i+2].Flags[0] == 0 {
		return sec.Frames[i+2].Samples[0], true
	}
	return 0, false
}

func mean(a, b int16) int16 {
	return int16((int32(a) + int32(b)) / 2)
}
