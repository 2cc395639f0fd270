package domain

// Line is one physical line of a vocabulary file
type Line struct {
	Raw    string
	Record WordRecord
	// Err is set when Raw could not be decoded; such lines are kept but never indexed.
	Err error
	// Dirty lines are serialized from Record instead of written back as Raw.
	Dirty bool
}

// Valid reports whether the line decoded into a record
func (l Line) Valid() bool {
	return l.Err == nil
}

// VocabularyFile is the ordered line set of one file, the unit of load and save
type VocabularyFile struct {
	Path     string
	Category Category
	Lines    []Line
}

// NewVocabularyFile creates an empty file bound to path and category
func NewVocabularyFile(path string, category Category) *VocabularyFile {
	return &VocabularyFile{Path: path, Category: category}
}

// Records returns the decoded records in file order, skipping malformed lines
func (f *VocabularyFile) Records() []WordRecord {
	records := make([]WordRecord, 0, len(f.Lines))
	for _, l := range f.Lines {
		if l.Valid() {
			records = append(records, l.Record.Clone())
		}
	}
	return records
}

// Len returns the number of decoded records
func (f *VocabularyFile) Len() int {
	n := 0
	for _, l := range f.Lines {
		if l.Valid() {
			n++
		}
	}
	return n
}

// lineIndex maps a record index to its position in Lines
func (f *VocabularyFile) lineIndex(index int) int {
	if index < 0 {
		return -1
	}
	n := 0
	for i, l := range f.Lines {
		if !l.Valid() {
			continue
		}
		if n == index {
			return i
		}
		n++
	}
	return -1
}

// Record returns the record at index
func (f *VocabularyFile) Record(index int) (WordRecord, error) {
	i := f.lineIndex(index)
	if i < 0 {
		return WordRecord{}, ErrIndexOutOfRange
	}
	return f.Lines[i].Record.Clone(), nil
}

// Set replaces the record at index
func (f *VocabularyFile) Set(index int, rec WordRecord) error {
	i := f.lineIndex(index)
	if i < 0 {
		return ErrIndexOutOfRange
	}
	f.Lines[i] = Line{Record: rec.Clone(), Dirty: true}
	return nil
}

// Delete removes the record at index and returns it
func (f *VocabularyFile) Delete(index int) (WordRecord, error) {
	i := f.lineIndex(index)
	if i < 0 {
		return WordRecord{}, ErrIndexOutOfRange
	}
	rec := f.Lines[i].Record
	f.Lines = append(f.Lines[:i], f.Lines[i+1:]...)
	return rec, nil
}

// Append adds a record at the end of the file
func (f *VocabularyFile) Append(rec WordRecord) {
	f.Lines = append(f.Lines, Line{Record: rec.Clone(), Dirty: true})
}

// Find returns the index of the first record keyed by english, or -1
func (f *VocabularyFile) Find(english string) int {
	n := 0
	for _, l := range f.Lines {
		if !l.Valid() {
			continue
		}
		if l.Record.Is(english) {
			return n
		}
		n++
	}
	return -1
}

// FindOther is like Find but ignores the record at skip
func (f *VocabularyFile) FindOther(english string, skip int) int {
	n := 0
	for _, l := range f.Lines {
		if !l.Valid() {
			continue
		}
		if n != skip && l.Record.Is(english) {
			return n
		}
		n++
	}
	return -1
}

// Update calls fn for every record; records for which fn returns true are marked
// for re-serialization. The indexes of changed records are returned.
func (f *VocabularyFile) Update(fn func(index int, rec *WordRecord) bool) []int {
	var changed []int
	n := 0
	for i := range f.Lines {
		l := &f.Lines[i]
		if !l.Valid() {
			continue
		}
		if fn(n, &l.Record) {
			l.Dirty = true
			changed = append(changed, n)
		}
		n++
	}
	return changed
}
