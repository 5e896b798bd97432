// Package circ implements the CIRC (Cross-Interleaved Reed-Solomon
// Code) primitives: delay lines, the fixed interleaver, the parity
// inverter, and the C1/C2 Reed-Solomon codecs.
//
// The GF(256) table construction below is a Go port of Phil Karn's
// public-domain Reed-Solomon codec, generalized to the classic
// Berlekamp-Massey erasure-and-error decoder so it can serve both the
// (32,28) C1 and (28,24) C2 codes via the generator field ECMA-130
// specifies: GF(2^8), generator polynomial 0x11D, first consecutive
// root 0, root step 1.
package circ

const (
	gfSymSize = 8
	gfNN      = (1 << gfSymSize) - 1 // 255
	gfPoly    = 0x11D
	rsFCR     = 0
	rsPrim    = 1
	a0        = gfNN // log(0) sentinel
)

type gfTables struct {
	alphaTo [gfNN + 1]int
	indexOf [gfNN + 1]int
}

var gf = buildGF()

func buildGF() *gfTables {
	t := &gfTables{}
	t.indexOf[0] = a0
	t.alphaTo[gfNN] = 0
	sr := 1
	for i := 0; i < gfNN; i++ {
		t.indexOf[sr] = i
		t.alphaTo[i] = sr
		sr <<= 1
		if sr&(1<<gfSymSize) != 0 {
			sr ^= gfPoly
		}
		sr &= gfNN
	}
	return t
}

func modnn(x int) int {
	for x >= gfNN {
		x -= gfNN
		x = (x >> gfSymSize) + (x & gfNN)
	}
	return x
}

// genPoly computes the index-form generator polynomial coefficients
// for an nroots-root RS code with first-consecutive-root rsFCR and
// root step rsPrim, mirroring init_rs_char's generator construction.
func genPoly(nroots int) []int {
	p := make([]int, nroots+1)
	p[0] = 1
	root := rsFCR * rsPrim
	for i := 0; i < nroots; i, root = i+1, root+rsPrim {
		p[i+1] = 1
		for j := i; j > 0; j-- {
			if p[j] != 0 {
				p[j] = p[j-1] ^ gf.alphaTo[modnn(gf.indexOf[p[j]]+root)]
			} else {
				p[j] = p[j-1]
			}
		}
		p[0] = gf.alphaTo[modnn(gf.indexOf[p[0]]+root)]
	}
	for i := range p {
		p[i] = gf.indexOf[p[i]]
	}
	return p
}
