package models

import "sort"

// SchemaVersion текущей схемы файла хранилища.
const SchemaVersion = 1

// Document — весь документ базы киберспорта: имя турнира -> запись.
// Инвариант: ключи карты совпадают с Tournament.Name.
type Document struct {
	SchemaVersion int                    `json:"schemaVersion"`
	Tournaments   map[string]*Tournament `json:"tournaments"`
}

// NewDocument returns an empty document at the current schema version.
func NewDocument() *Document {
	return &Document{
		SchemaVersion: SchemaVersion,
		Tournaments:   make(map[string]*Tournament),
	}
}

// Get returns the tournament with the given name, or nil.
func (d *Document) Get(name string) *Tournament {
	return d.Tournaments[name]
}

// Put inserts or replaces a tournament under its own name.
func (d *Document) Put(t *Tournament) {
	d.Tournaments[t.Name] = t
}

// Delete removes one tournament by name. Caller is responsible for saving
// the document afterwards.
func (d *Document) Delete(name string) bool {
	if _, ok := d.Tournaments[name]; !ok {
		return false
	}
	delete(d.Tournaments, name)
	return true
}

// Names returns all tournament names sorted ascending. Map iteration order is
// not stable in Go, so every view sorts before paginating.
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.Tournaments))
	for name := range d.Tournaments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NamesDescending returns tournament names sorted descending, the order the
// portal quick-select uses (newest seasons first by naming convention).
func (d *Document) NamesDescending() []string {
	names := d.Names()
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}
