package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/esrelay/internal/domain"
)

func TestNew_Accessors(t *testing.T) {
	doc := New("Story", "Once upon a time")
	if doc.Title() != "Story" {
		t.Errorf("Title() = %q", doc.Title())
	}
	if doc.Text() != "Once upon a time" {
		t.Errorf("Text() = %q", doc.Text())
	}
	if doc.IsZero() {
		t.Error("IsZero() should be false")
	}
}

func TestString(t *testing.T) {
	doc := New("FoundTitle", "FoundText")
	want := "Document[title=FoundTitle, text=FoundText]"
	if got := doc.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLookup_Present(t *testing.T) {
	doc := New("t", "x")
	tests := []struct {
		name   string
		lookup Lookup
		want   bool
	}{
		{"found with source", Lookup{Found: true, Source: &doc}, true},
		{"found without source", Lookup{Found: true}, false},
		{"not found", Lookup{}, false},
		{"not found with stale source", Lookup{Source: &doc}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.lookup.Present(); got != tc.want {
				t.Errorf("Present() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidate_Valid(t *testing.T) {
	v := NewValidator()
	req := Request{Title: "Sample Title", Text: "Sample Text"}
	if err := v.Validate(&req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := req.ToDocument()
	if doc.Title() != "Sample Title" || doc.Text() != "Sample Text" {
		t.Errorf("ToDocument() = %v", doc)
	}
}

func TestValidate_Blank(t *testing.T) {
	v := NewValidator()
	tests := []struct {
		name      string
		req       Request
		badFields []string
	}{
		{"empty title", Request{Title: "", Text: "text"}, []string{"title"}},
		{"space title", Request{Title: " ", Text: "text"}, []string{"title"}},
		{"tab title", Request{Title: "\t\n", Text: "text"}, []string{"title"}},
		{"empty text", Request{Title: "title", Text: ""}, []string{"text"}},
		{"space text", Request{Title: "title", Text: "   "}, []string{"text"}},
		{"both empty", Request{}, []string{"text", "title"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(&tc.req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, domain.ErrInvalidDocument) {
				t.Errorf("expected ErrInvalidDocument, got %v", err)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if len(verr.Fields) != len(tc.badFields) {
				t.Errorf("fields = %v, want %v", verr.Fields, tc.badFields)
			}
			for _, f := range tc.badFields {
				if _, ok := verr.Fields[f]; !ok {
					t.Errorf("missing field %q in %v", f, verr.Fields)
				}
				if !strings.Contains(err.Error(), f+" must not be blank") {
					t.Errorf("error %q does not mention %q", err.Error(), f)
				}
			}
		})
	}
}
