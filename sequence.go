package prep

import "strconv"

//Sequence ids. A sequence id is a stable, order-preserving grouping key:
//scanning the atoms in their current order, the id starts at 1 and grows by
//one every time the key tuple changes, so atoms with identical consecutive
//keys share an id and never reorder relative to each other.

//SequenceIDs returns the 1-based sequence id of every atom, keyed by the
//(residue id, insertion code, segment id) tuple that identifies a residue
//instance.
func SequenceIDs(S *Structure) []int {
	keys := make([]string, S.Len())
	for i := 0; i < S.Len(); i++ {
		keys[i] = strconv.Itoa(S.MolID[i]) + "|" + S.Insertion[i] + "|" + S.SegID[i]
	}
	return sequenceStrings(keys)
}

//sequenceStrings is the scan behind SequenceIDs, usable with any
//precomputed key per atom.
func sequenceStrings(keys []string) []int {
	ids := make([]int, len(keys))
	id := 0
	for i, k := range keys {
		if i == 0 || k != keys[i-1] {
			id++
		}
		ids[i] = id
	}
	return ids
}
