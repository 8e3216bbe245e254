package marker

import "fmt"

// Block is one marker-delimited managed region inside a target file.
// Prefix is the dash form exactly as written in the marker; Body is the
// verbatim text between the end of the start marker and the start of the
// end marker, with no transformation applied.
type Block struct {
	ID     string
	Prefix string
	Hash   string
	Body   string
	Start  int // byte offset of the start marker
	End    int // byte offset just past the end marker
}

// File is a parsed target file: the raw text plus the managed blocks
// found in it, in on-disk order. Text outside block spans is opaque and
// preserved byte-for-byte on rewrite.
type File struct {
	Path   string
	Raw    string
	Blocks []Block
}

// ParseError reports a malformed or duplicate marker. It aborts the run
// for the offending file; the engine never guesses a repair, because
// managed content correctness depends on unambiguous block boundaries.
type ParseError struct {
	Path   string
	Line   int
	Marker string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s (marker %q)", e.Path, e.Line, e.Reason, e.Marker)
}

// Parse scans raw and extracts the ordered sequence of managed blocks.
// Block spans never overlap and appear in strictly increasing offset
// order; two blocks sharing (id, prefix) are an error.
func Parse(path, raw string, style Style) (*File, error) {
	tokens, err := scan(path, raw, style)
	if err != nil {
		return nil, err
	}

	f := &File{Path: path, Raw: raw}
	seen := make(map[[2]string]bool)

	var open *token
	for i := range tokens {
		tok := &tokens[i]
		switch tok.kind {
		case tokenStart:
			if open != nil {
				return nil, &ParseError{
					Path:   path,
					Line:   open.line,
					Marker: snippet(raw[open.start:open.end]),
					Reason: fmt.Sprintf("start marker %q has no matching end before the next start", open.id),
				}
			}
			open = tok

		case tokenEnd:
			if open == nil {
				return nil, &ParseError{
					Path:   path,
					Line:   tok.line,
					Marker: snippet(raw[tok.start:tok.end]),
					Reason: fmt.Sprintf("end marker %q has no matching start", tok.id),
				}
			}
			if tok.id != open.id {
				return nil, &ParseError{
					Path:   path,
					Line:   tok.line,
					Marker: snippet(raw[tok.start:tok.end]),
					Reason: fmt.Sprintf("end marker %q does not match open block %q", tok.id, open.id),
				}
			}

			key := [2]string{open.id, open.prefix}
			if seen[key] {
				return nil, &ParseError{
					Path:   path,
					Line:   open.line,
					Marker: snippet(raw[open.start:open.end]),
					Reason: fmt.Sprintf("duplicate block %s/%s", open.prefix, open.id),
				}
			}
			seen[key] = true

			f.Blocks = append(f.Blocks, Block{
				ID:     open.id,
				Prefix: open.prefix,
				Hash:   open.hash,
				Body:   raw[open.end:tok.start],
				Start:  open.start,
				End:    tok.end,
			})
			open = nil
		}
	}

	if open != nil {
		return nil, &ParseError{
			Path:   path,
			Line:   open.line,
			Marker: snippet(raw[open.start:open.end]),
			Reason: fmt.Sprintf("start marker %q is never closed", open.id),
		}
	}

	return f, nil
}

// FindBlock returns the block with the given id and dash-form prefix, or
// nil if the file has none.
func (f *File) FindBlock(id, prefix string) *Block {
	for i := range f.Blocks {
		if f.Blocks[i].ID == id && f.Blocks[i].Prefix == prefix {
			return &f.Blocks[i]
		}
	}
	return nil
}
