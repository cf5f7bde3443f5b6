package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kailas-cloud/esrelay/internal/db"
	"github.com/kailas-cloud/esrelay/internal/domain"
	domdoc "github.com/kailas-cloud/esrelay/internal/domain/document"
)

// IndexDocument stores doc under a backend-generated id, then refreshes the index
// so the document is visible to the next read. A failed refresh fails the call.
func (s *Store) IndexDocument(ctx context.Context, index string, doc domdoc.Document) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body, err := json.Marshal(sourceFromDomain(doc))
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	res, err := s.perform(db.OpIndex, false, func() (*esapi.Response, error) {
		return s.client.Index(url.PathEscape(index), bytes.NewReader(body), s.client.Index.WithContext(ctx))
	})
	if err != nil {
		return "", err
	}

	var out indexResponse
	if err := decodeBody(db.OpIndex, res, &out); err != nil {
		return "", err
	}

	if err := s.refresh(ctx, index); err != nil {
		return "", err
	}
	return out.ID, nil
}

// GetDocument fetches a document by id. A missing document and a missing index
// are both reported as not found. index and id are opaque and sent path-escaped.
func (s *Store) GetDocument(ctx context.Context, index, id string) (domdoc.Lookup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.perform(db.OpGet, true, func() (*esapi.Response, error) {
		return s.client.Get(url.PathEscape(index), url.PathEscape(id), s.client.Get.WithContext(ctx))
	})
	if err != nil {
		return domdoc.Lookup{}, err
	}

	if res.StatusCode == http.StatusNotFound {
		_ = res.Body.Close()
		return domdoc.Lookup{}, nil
	}

	var out getResponse
	if err := decodeBody(db.OpGet, res, &out); err != nil {
		return domdoc.Lookup{}, err
	}
	if !out.Found {
		return domdoc.Lookup{}, nil
	}

	raw := bytes.TrimSpace(out.Source)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return domdoc.Lookup{Found: true}, nil
	}

	var src documentSource
	if err := json.Unmarshal(raw, &src); err != nil {
		return domdoc.Lookup{}, domain.NewTransportError(db.OpGet, fmt.Errorf("decode document %s/%s: %w", index, id, err))
	}
	doc := src.toDomain()
	return domdoc.Lookup{Found: true, Source: &doc}, nil
}
