package document

import "fmt"

// Document is the payload stored in and read back from a search index (immutable value object).
// Identity is assigned by the backend and lives outside the document.
type Document struct {
	title string
	text  string
}

// New creates a Document.
func New(title, text string) Document {
	return Document{title: title, text: text}
}

// Title returns the document title.
func (d Document) Title() string { return d.title }

// Text returns the document body text.
func (d Document) Text() string { return d.text }

// IsZero reports whether both fields are empty.
func (d Document) IsZero() bool { return d.title == "" && d.text == "" }

// String renders the document the way the relay returns it to clients.
func (d Document) String() string {
	return fmt.Sprintf("Document[title=%s, text=%s]", d.title, d.text)
}

// Lookup is the outcome of fetching a document by id.
// Source may be nil even when Found is true (stored without a payload).
type Lookup struct {
	Found  bool
	Source *Document
}

// Present reports whether the lookup yielded a document with a payload.
func (l Lookup) Present() bool {
	return l.Found && l.Source != nil
}
