package otelauta

type (
	// Position identifies a single cell on the board: a string index 0..5 and
	// a fret number, 0 meaning the open string. Positions order by string
	// first, fret second, so sorted slices of them marshal deterministically.
	Position struct {
		String int `yaml:"string" json:"string"`
		Fret   int `yaml:"fret" json:"fret"`
	}

	// CellInfo is the resolved musical content of a position for a given root
	// and scale. It is derived on demand and never stored in a document.
	CellInfo struct {
		Note    PitchClass
		Offset  int
		IsRoot  bool
		InScale bool
	}
)

// Less orders positions by string, then fret.
func (p Position) Less(q Position) bool {
	if p.String != q.String {
		return p.String < q.String
	}
	return p.Fret < q.Fret
}

// NoteLabel returns the note name of the cell ("C", "F#", ...).
func (c CellInfo) NoteLabel() string {
	return c.Note.String()
}

// IntervalLabel returns the interval label of the cell relative to the root
// it was resolved against ("1", "b3", ...).
func (c CellInfo) IntervalLabel() string {
	return IntervalLabel(c.Offset)
}

// Resolve computes the cell content at a position: the sounding pitch class,
// its offset from the root and whether it is the root or belongs to the
// scale. It is pure, so it may be called per cell on every render pass.
func (t Tuning) Resolve(stringIndex, fret int, root PitchClass, scale Scale) CellInfo {
	note := PitchClass(mod(t[stringIndex].Pitch+fret, NumPitchClasses))
	offset := mod(int(note)-int(root)+NumPitchClasses, NumPitchClasses)
	return CellInfo{
		Note:    note,
		Offset:  offset,
		IsRoot:  offset == 0,
		InScale: scale.Contains(offset),
	}
}

// ResolveCell resolves a cell against a scale given by name, so the lookup
// failure of an unknown name surfaces as ErrUnknownScale instead of a wrong
// but plausible board.
func ResolveCell(t Tuning, stringIndex, fret int, root PitchClass, scale string) (CellInfo, error) {
	s, err := ScaleByName(scale)
	if err != nil {
		return CellInfo{}, err
	}
	return t.Resolve(stringIndex, fret, root, s), nil
}
