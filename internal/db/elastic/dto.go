package elastic

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kailas-cloud/esrelay/internal/domain"
	domdoc "github.com/kailas-cloud/esrelay/internal/domain/document"
)

// documentSource is the JSON form of a document inside an index.
type documentSource struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

func sourceFromDomain(doc domdoc.Document) documentSource {
	return documentSource{Title: doc.Title(), Text: doc.Text()}
}

func (s documentSource) toDomain() domdoc.Document {
	return domdoc.New(s.Title, s.Text)
}

type createIndexResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	Index        string `json:"index"`
}

type indexResponse struct {
	Index  string `json:"_index"`
	ID     string `json:"_id"`
	Result string `json:"result"`
}

type getResponse struct {
	Index  string          `json:"_index"`
	ID     string          `json:"_id"`
	Found  bool            `json:"found"`
	Source json.RawMessage `json:"_source"`
}

type errorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

// decodeBody reads a successful response body into v.
// A body that cannot be read or parsed means the round trip did not complete.
func decodeBody(op string, res *esapi.Response, v any) error {
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return domain.NewTransportError(op, err)
	}
	return nil
}

// decodeError builds a BackendError from an error response.
// Elasticsearch answers with {"error":{"type","reason"},"status"} or,
// for some endpoints, with a bare string error; both are tolerated.
func decodeError(op string, res *esapi.Response) error {
	be := &domain.BackendError{Op: op, Status: res.StatusCode}

	body, err := io.ReadAll(res.Body)
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		return be
	}

	var er errorResponse
	if json.Unmarshal(body, &er) == nil && er.Error.Type != "" {
		be.Type = er.Error.Type
		be.Reason = er.Error.Reason
		return be
	}

	be.Reason = string(bytes.TrimSpace(body))
	return be
}
