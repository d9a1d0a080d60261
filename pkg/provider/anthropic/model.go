package anthropic

import (
	"context"
	"net/url"
	"regexp"

	// Packages
	client "github.com/mutablelogic/go-client"
	meteo "github.com/mutablelogic/go-meteo"
	opt "github.com/mutablelogic/go-meteo/pkg/opt"
	schema "github.com/mutablelogic/go-meteo/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListModels returns the available models. Without pagination options, all
// pages are fetched and the result is cached. With WithLimit or WithAfterId
// a single page is returned and the cache is bypassed.
func (c *Client) ListModels(ctx context.Context, opts ...opt.Opt) ([]schema.Model, error) {
	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}

	// Single page
	if options.Has(opt.LimitKey) || options.Has(opt.AfterIdKey) {
		models, _, err := c.listModels(ctx, options.Query(opt.LimitKey, opt.AfterIdKey))
		return models, err
	}

	// All pages, cached
	models, _, err := c.catalog.Fetch(ctx, "", func(ctx context.Context, _ string) ([]schema.Model, error) {
		return c.listAllModels(ctx)
	})
	return models, err
}

// GetModel returns a specific model by ID
func (c *Client) GetModel(ctx context.Context, name string, opts ...opt.Opt) (*schema.Model, error) {
	if name == "" {
		return nil, meteo.ErrBadParameter.With("model name is required")
	}
	model, _, err := c.models.Fetch(ctx, name, func(ctx context.Context, name string) (schema.Model, error) {
		var response model
		if err := c.DoWithContext(ctx, nil, &response, client.OptPath("models", name)); err != nil {
			return schema.Model{}, err
		}
		return response.toSchema(), nil
	})
	if err != nil {
		return nil, err
	}
	return types.Ptr(model), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// listAllModels follows the pagination cursor until there are no more pages
func (c *Client) listAllModels(ctx context.Context) ([]schema.Model, error) {
	request := url.Values{}
	result := make([]schema.Model, 0, 20)
	for {
		models, next, err := c.listModels(ctx, request)
		if err != nil {
			return nil, err
		}
		result = append(result, models...)
		if next == "" {
			return result, nil
		}
		request.Set(opt.AfterIdKey, next)
	}
}

// listModels returns one page of models and the cursor for the next page,
// which is empty on the last page
func (c *Client) listModels(ctx context.Context, query url.Values) ([]schema.Model, string, error) {
	var response listModelsResponse
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("models"), client.OptQuery(query)); err != nil {
		return nil, "", err
	}
	result := make([]schema.Model, 0, len(response.Data))
	for _, m := range response.Data {
		model := m.toSchema()
		c.models.Set(model.Name, model)
		result = append(result, model)
	}
	if !response.HasMore {
		return result, "", nil
	}
	return result, response.LastId, nil
}

// toSchema converts an API model response to schema.Model
func (m model) toSchema() schema.Model {
	meta := make(map[string]any, 3)
	variant, version, date := parseModelId(m.Id)
	for key, value := range map[string]string{"variant": variant, "version": version, "date": date} {
		if value != "" {
			meta[key] = value
		}
	}
	return schema.Model{
		Name:        m.Id,
		Description: m.DisplayName,
		Created:     m.CreatedAt,
		OwnedBy:     schema.Anthropic,
		Meta:        meta,
	}
}

var (
	// claude-3-5-haiku-20241022
	reVersionFirst = regexp.MustCompile(`^claude-(\d+)(?:-(\d+))?-([a-z]+)-(\d{8})$`)
	// claude-sonnet-4-5-20250929, claude-opus-4-20250514, claude-opus-4-6
	reVariantFirst = regexp.MustCompile(`^claude-([a-z]+)-(\d+)(?:-(\d{1,2}))?(?:-(\d{8}))?$`)
)

// parseModelId extracts the variant, version and release date from a model ID
func parseModelId(id string) (variant, version, date string) {
	if parts := reVersionFirst.FindStringSubmatch(id); parts != nil {
		return parts[3], joinVersion(parts[1], parts[2]), parts[4]
	}
	if parts := reVariantFirst.FindStringSubmatch(id); parts != nil {
		return parts[1], joinVersion(parts[2], parts[3]), parts[4]
	}
	return "", "", ""
}

func joinVersion(major, minor string) string {
	if minor == "" {
		return major
	}
	return major + "." + minor
}
