package elastic

import (
	"context"
	"net/url"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kailas-cloud/esrelay/internal/db"
)

// CreateIndex creates an index with default settings and returns the acknowledged index name.
// esapi writes path segments verbatim, so every name and id is escaped here.
func (s *Store) CreateIndex(ctx context.Context, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.perform(db.OpCreateIndex, false, func() (*esapi.Response, error) {
		return s.client.Indices.Create(url.PathEscape(name), s.client.Indices.Create.WithContext(ctx))
	})
	if err != nil {
		return "", err
	}

	var out createIndexResponse
	if err := decodeBody(db.OpCreateIndex, res, &out); err != nil {
		return "", err
	}
	return out.Index, nil
}

// refresh makes recent writes to index visible to reads.
func (s *Store) refresh(ctx context.Context, index string) error {
	res, err := s.perform(db.OpRefresh, false, func() (*esapi.Response, error) {
		return s.client.Indices.Refresh(
			s.client.Indices.Refresh.WithIndex(url.PathEscape(index)),
			s.client.Indices.Refresh.WithContext(ctx),
		)
	})
	if err != nil {
		return err
	}
	return res.Body.Close()
}
