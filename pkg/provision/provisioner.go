// Package provision creates search-engine indexes from derived document
// metadata. It is the index-creation collaborator the metadata facade hands
// its {settings, mappings} structure to.
package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"github.com/searchmap/searchmap/pkg/docmeta"
	"github.com/searchmap/searchmap/pkg/metadata"
)

// ErrNotIndexable is returned when provisioning is requested for a class
// without an Index annotation.
type ErrNotIndexable struct {
	Class string
}

func (e ErrNotIndexable) Error() string {
	return "class " + e.Class + " is not indexable"
}

// Provisioner creates and drops indexes for mapped classes.
type Provisioner struct {
	client *elasticsearch.Client
	meta   *docmeta.Facade
	logger *zap.Logger
}

// New creates a new provisioner. A nil logger defaults to a nop logger.
func New(client *elasticsearch.Client, meta *docmeta.Facade, logger *zap.Logger) *Provisioner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provisioner{
		client: client,
		meta:   meta,
		logger: logger,
	}
}

// CreateIndex derives the class's index metadata and creates the index under
// its alias. The analysis configuration is folded into the index settings.
func (p *Provisioner) CreateIndex(ctx context.Context, t *metadata.TypeDescriptor) error {
	md, err := p.meta.IndexMetadataOf(ctx, t)
	if err != nil {
		return err
	}
	if md.Empty() {
		return ErrNotIndexable{Class: t.FullName()}
	}

	name := p.meta.IndexAliasOf(t)
	body, err := json.Marshal(indexBody(md))
	if err != nil {
		return fmt.Errorf("encoding index body for %s: %w", name, err)
	}

	res, err := p.client.Indices.Create(
		name,
		p.client.Indices.Create.WithContext(ctx),
		p.client.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return fmt.Errorf("creating index %s: %w", name, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error response creating index %s: %s", name, res.String())
	}

	p.logger.Info("created index",
		zap.String("index", name),
		zap.String("class", t.FullName()))
	return nil
}

// IndexExists checks whether an index exists under the given alias.
func (p *Provisioner) IndexExists(ctx context.Context, name string) (bool, error) {
	res, err := p.client.Indices.Exists(
		[]string{name},
		p.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, fmt.Errorf("checking index %s: %w", name, err)
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return false, nil
	}
	if res.IsError() {
		return false, fmt.Errorf("error response checking index %s: %s", name, res.String())
	}
	return true, nil
}

// DeleteIndex drops the index under the given alias.
func (p *Provisioner) DeleteIndex(ctx context.Context, name string) error {
	res, err := p.client.Indices.Delete(
		[]string{name},
		p.client.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("deleting index %s: %w", name, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error response deleting index %s: %s", name, res.String())
	}

	p.logger.Info("deleted index", zap.String("index", name))
	return nil
}

// indexBody assembles the create-index request body. Mappings are flattened
// to the single wire type's properties; the analysis configuration goes
// under settings.analysis.
func indexBody(md *docmeta.IndexMetadata) map[string]interface{} {
	body := make(map[string]interface{}, 2)

	settings := make(map[string]interface{}, len(md.Settings)+1)
	for k, v := range md.Settings {
		settings[k] = v
	}
	if len(md.Analysis) > 0 {
		settings["analysis"] = md.Analysis
	}
	if len(settings) > 0 {
		body["settings"] = settings
	}

	for _, tm := range md.Mappings {
		body["mappings"] = map[string]interface{}{
			"properties": tm.Properties,
		}
	}
	return body
}
