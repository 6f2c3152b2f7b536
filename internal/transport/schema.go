package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SEEDtk/p3-core/internal/domain"
)

// PhysicalField is one field of a physical table as reported by the remote
// service's schema endpoint.
type PhysicalField struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Multi bool   `json:"multiValued"`
}

type schemaResponse struct {
	Schema struct {
		Fields []PhysicalField `json:"fields"`
	} `json:"schema"`
}

// Schema fetches the physical schema of a table. Responses are cached, so
// repeated introspection of the same table costs one round trip.
func (c *Client) Schema(ctx context.Context, table string) ([]PhysicalField, error) {
	if fields, ok := c.schemas.Get(table); ok {
		return fields, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/"+table+"/schema", nil)
	if err != nil {
		return nil, fmt.Errorf("build schema request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch schema for %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.TransportError{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	var decoded schemaResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode schema for %s: %w", table, err)
	}

	c.schemas.Add(table, decoded.Schema.Fields)
	return decoded.Schema.Fields, nil
}
