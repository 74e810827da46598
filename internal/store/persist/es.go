package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

type ESConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
}

// document wraps the raw store payload so the index never tries to map the
// dynamic sample/candidate keys inside it.
type document struct {
	Value json.RawMessage `json:"value"`
}

// ESPersister keeps one document per storage key in Elasticsearch.
type ESPersister struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewESPersister(ctx context.Context, cfg ESConfig) (*ESPersister, error) {
	esCfg := elasticsearch.Config{
		Addresses: cfg.Addresses,
	}
	if cfg.Username != "" && cfg.Password != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	client, err := elasticsearch.NewTypedClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	p := &ESPersister{client: client, indexName: cfg.IndexName}
	if err := p.ensureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}
	return p, nil
}

func (p *ESPersister) Save(ctx context.Context, key string, data []byte) error {
	doc := document{Value: data}
	res, err := p.client.Index(p.indexName).Id(key).Document(doc).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index evaluation store %q: %w", key, err)
	}
	slog.Debug("Evaluation store indexed", "key", key, "index", p.indexName, "result", res.Result)
	return nil
}

func (p *ESPersister) Load(ctx context.Context, key string) ([]byte, error) {
	res, err := p.client.Get(p.indexName, key).Do(ctx)
	if err != nil {
		var esErr *types.ElasticsearchError
		if errors.As(err, &esErr) && esErr.Status == 404 {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get evaluation store %q: %w", key, err)
	}
	if !res.Found {
		return nil, nil
	}

	var doc document
	if err := json.Unmarshal(res.Source_, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode stored document %q: %w", key, err)
	}
	return doc.Value, nil
}

func (p *ESPersister) ensureIndex(ctx context.Context) error {
	exists, err := p.client.Indices.Exists(p.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		return nil
	}

	enabled := false
	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"value": &types.ObjectProperty{Enabled: &enabled},
		},
	}

	createRes, err := p.client.Indices.Create(p.indexName).Mappings(&mappings).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", p.indexName)
	return nil
}
