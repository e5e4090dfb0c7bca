package bitio

import "sort"

// VLCEntry is one slot of a decode table: either a resolved leaf
// (Length > 0, Symbol is the decoded value) or a pointer to a subtable
// (Length <= 0, -Length is the subtable's index width and Symbol is the
// subtable's starting offset into VLC.table).
type VLCEntry struct {
	Symbol int32
	Length int8
}

// VLC is a cascaded (at most 3 levels deep) canonical-Huffman decode table,
// built once at init time and read-only thereafter.
//
// Adapted from: FFmpeg's generic get_vlc2()/init_vlc() table shape, which
// every ATRAC3/ATRAC3+-family decoder in the wild builds its ~140 Huffman
// tables from; re-expressed here without the shared global arena the C
// source uses (see DESIGN.md).
type VLC struct {
	table  []VLCEntry
	nbBits uint // primary table index width
}

const maxVLCLevels = 3

// codeSpec is one (length, code, symbol) entry used during construction.
type codeSpec struct {
	bits   int
	code   uint32
	symbol int32
}

// NewVLC builds a cascaded VLC table from parallel bits/codes/symbols
// arrays. symbols may be nil, in which case the symbol is the array index.
// bits[i] == 0 marks an unused slot. nbBits sizes the primary table; codes
// longer than nbBits spill into chained subtables sized to their own
// residual length (capped at maxVLCLevels cascaded lookups).
func NewVLC(nbBits uint, lengths []int, codes []uint32, symbols []int32) (*VLC, error) {
	specs := make([]codeSpec, 0, len(lengths))
	for i, l := range lengths {
		if l <= 0 {
			continue
		}
		if codes[i] >= (uint32(1) << uint(l)) {
			return nil, errInvalidVLC("code exceeds its own bit length")
		}
		sym := int32(i)
		if symbols != nil {
			sym = symbols[i]
		}
		specs = append(specs, codeSpec{bits: l, code: codes[i], symbol: sym})
	}
	sort.Slice(specs, func(i, j int) bool {
		if specs[i].bits != specs[j].bits {
			return specs[i].bits < specs[j].bits
		}
		return specs[i].code < specs[j].code
	})

	v := &VLC{nbBits: nbBits}
	v.table = make([]VLCEntry, 1<<nbBits)
	if err := v.build(specs, 0, nbBits, 0, 1); err != nil {
		return nil, err
	}
	return v, nil
}

// build installs specs (all codes left-aligned at `shift` into the current
// level's index space) into table starting at tableOffset, recursing into
// subtables for codes longer than levelBits. depth bounds recursion to
// maxVLCLevels cascaded lookups, matching the spec's "up to three levels".
func (v *VLC) build(specs []codeSpec, tableOffset int, levelBits uint, codeOffset int, depth int) error {
	// Partition codes that resolve within levelBits from those needing a
	// further subtable.
	type bucket struct {
		prefix  uint32
		entries []codeSpec
	}
	buckets := map[uint32]*bucket{}
	var order []uint32

	for _, s := range specs {
		rel := s.bits - codeOffset
		// local holds only the bits of this code not yet consumed by an
		// outer cascade level; without this mask, bits already used to
		// select the current subtable would leak into this level's index
		// arithmetic.
		local := s.code
		if rel < 32 {
			local &= (uint32(1) << uint(rel)) - 1
		}
		if rel <= int(levelBits) {
			// Direct leaf: fan out over all prefixes that share this code's
			// top `rel` bits, since narrower codes occupy multiple slots
			// in a wider index space.
			prefix := local << uint(int(levelBits)-rel)
			count := 1 << uint(int(levelBits)-rel)
			for k := 0; k < count; k++ {
				idx := tableOffset + int(prefix) + k
				if idx >= len(v.table) {
					return errInvalidVLC("code index out of range")
				}
				v.table[idx] = VLCEntry{Symbol: s.symbol, Length: int8(rel)}
			}
			continue
		}
		key := local >> uint(rel-int(levelBits))
		b, ok := buckets[key]
		if !ok {
			b = &bucket{prefix: key}
			buckets[key] = b
			order = append(order, key)
		}
		b.entries = append(b.entries, s)
	}

	if len(buckets) == 0 {
		return nil
	}
	if depth >= maxVLCLevels {
		return errInvalidVLC("codeword exceeds maximum cascade depth")
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	for _, key := range order {
		b := buckets[key]
		maxRel := 0
		for _, s := range b.entries {
			if rel := s.bits - (codeOffset + int(levelBits)); rel > maxRel {
				maxRel = rel
			}
		}
		subBits := uint(maxRel)
		subOffset := len(v.table)
		v.table = append(v.table, make([]VLCEntry, 1<<subBits)...)
		idx := tableOffset + int(key)
		v.table[idx] = VLCEntry{Symbol: int32(subOffset), Length: -int8(subBits)}
		if err := v.build(b.entries, subOffset, subBits, codeOffset+int(levelBits), depth+1); err != nil {
			return err
		}
	}
	return nil
}

// NewCanonicalVLC builds a VLC table from a canonical length distribution:
// descriptor = [minLen, maxLen, countAtMinLen, countAtMinLen+1, ...]. Codes
// are assigned in ascending numeric order as lengths fill from minLen to
// maxLen by the given counts, and symbols are assigned densely in that same
// order (0, 1, 2, ...) unless symbolOrder is supplied.
func NewCanonicalVLC(nbBits uint, descriptor []int, symbolOrder []int32) (*VLC, error) {
	if len(descriptor) < 2 {
		return nil, errInvalidVLC("canonical descriptor too short")
	}
	minLen, maxLen := descriptor[0], descriptor[1]
	counts := descriptor[2:]
	if len(counts) != maxLen-minLen+1 {
		return nil, errInvalidVLC("canonical descriptor count mismatch")
	}

	var lengths []int
	var codes []uint32
	var symbols []int32
	code := uint32(0)
	sym := int32(0)
	for li, count := range counts {
		length := minLen + li
		for c := 0; c < count; c++ {
			lengths = append(lengths, length)
			codes = append(codes, code)
			if symbolOrder != nil {
				if int(sym) >= len(symbolOrder) {
					return nil, errInvalidVLC("symbol order exhausted")
				}
				symbols = append(symbols, symbolOrder[sym])
			} else {
				symbols = append(symbols, sym)
			}
			sym++
			code++
		}
		code <<= 1
	}
	return NewVLC(nbBits, lengths, codes, symbols)
}

// Read decodes one symbol from r, following cascaded subtables as needed.
// Runtime VLC lookups never fail: the tables built by NewVLC/NewCanonicalVLC
// are exhaustive over their index space.
func (v *VLC) Read(r *Reader) int32 {
	bits := v.nbBits
	off := 0
	for {
		idx := off + int(r.PeekBits(bits))
		e := v.table[idx]
		if e.Length > 0 {
			r.SkipBits(uint(e.Length))
			return e.Symbol
		}
		r.SkipBits(bits)
		off = int(e.Symbol)
		bits = uint(-e.Length)
	}
}

type vlcError string

func (e vlcError) Error() string { return string(e) }

func errInvalidVLC(msg string) error { return vlcError("bitio: invalid vlc table: " + msg) }
