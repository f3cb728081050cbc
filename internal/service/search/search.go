package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/elastic/go-elasticsearch/v9"
)

// Engine finds products matching a free text query.
type Engine interface {
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

// maxResultWindow is the default index.max_result_window; deeper pages are
// rejected by the cluster.
const maxResultWindow = 10000

type Elastic struct {
	ES    *elasticsearch.Client
	Index string
}

func (s *Elastic) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	// Out of window pages only ask for the total.
	beyond := from < 0 || from > maxResultWindow-size
	if beyond {
		from, size = 0, 0
	}

	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description", "category"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode search: %w", err)
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return 0, nil, fmt.Errorf("search error %s: %s", res.Status(), msg)
	}

	var r struct {
		Hits struct {
			Total struct{ Value int64 } `json:"total"`
			Hits  []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decode search: %w", err)
	}

	if beyond {
		return r.Hits.Total.Value, []models.Product{}, nil
	}
	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}

// IndexProducts writes every product into the index, keyed by product id.
func (s *Elastic) IndexProducts(ctx context.Context, products []models.Product) error {
	for _, p := range products {
		doc, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode product %d: %w", p.ID, err)
		}

		res, err := s.ES.Index(
			s.Index,
			bytes.NewReader(doc),
			s.ES.Index.WithContext(ctx),
			s.ES.Index.WithDocumentID(strconv.Itoa(p.ID)),
		)
		if err != nil {
			return fmt.Errorf("index product %d: %w", p.ID, err)
		}
		failed := res.IsError()
		status := res.Status()
		res.Body.Close()
		if failed {
			return fmt.Errorf("index product %d: %s", p.ID, status)
		}
	}
	return nil
}

// Source supplies the products a Local engine searches.
type Source interface {
	Products(ctx context.Context) ([]models.Product, error)
}

// Local searches the in-memory catalog by case-insensitive substring. It is
// used when no Elasticsearch cluster is configured.
type Local struct {
	Catalog Source
}

func (s *Local) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	products, err := s.Catalog.Products(ctx)
	if err != nil {
		return 0, nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0, []models.Product{}, nil
	}
	var hits []models.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			hits = append(hits, p)
		}
	}

	total := int64(len(hits))
	if from < 0 || from >= len(hits) {
		return total, []models.Product{}, nil
	}
	end := min(from+size, len(hits))
	return total, hits[from:end], nil
}
