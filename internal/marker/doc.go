// Package marker parses and renders the machine-owned regions embedded in
// otherwise human-edited target files. A managed block is delimited by a
// start marker carrying id, prefix, and content-hash attributes and a
// matching end marker; everything between the two is the block body,
// everything outside is preserved byte-for-byte.
//
// Parsing is a two-stage pass: a tokenizer produces a typed sequence of
// start/end marker events, then a single pairing pass turns them into
// blocks. Malformed markers (an unmatched start, an end with no start,
// duplicate id/prefix pairs) are structural errors reported as *ParseError
// with the offending marker and its line.
package marker
