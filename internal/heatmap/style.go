package heatmap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/torvik/mapwiki-backend-go/internal/models"
)

// StyleBracket maps a zoom range to rendering parameters. A bracket
// applies to every zoom level >= MinZoom up to the next bracket.
type StyleBracket struct {
	MinZoom int     `yaml:"minZoom"`
	Radius  float64 `yaml:"radius"`
	Blur    float64 `yaml:"blur"`
	Opacity float64 `yaml:"opacity"`
}

// StyleResolver resolves zoom levels to rendering parameters. It is a
// total, pure, piecewise-constant function: equal zoom in, equal
// params out, no hysteresis.
type StyleResolver struct {
	brackets []StyleBracket // sorted by MinZoom ascending
}

// defaultBrackets were tuned against the wiki map client: wide soft
// blobs when the whole map is visible, tightening as tiles resolve,
// slightly reduced opacity at depth so dense clusters stay legible.
var defaultBrackets = []StyleBracket{
	{MinZoom: 0, Radius: 48, Blur: 32, Opacity: 0.8},
	{MinZoom: 3, Radius: 36, Blur: 24, Opacity: 0.8},
	{MinZoom: 5, Radius: 24, Blur: 16, Opacity: 0.75},
	{MinZoom: 7, Radius: 16, Blur: 10, Opacity: 0.7},
	{MinZoom: 9, Radius: 10, Blur: 6, Opacity: 0.65},
}

// NewStyleResolver returns a resolver with the built-in brackets
func NewStyleResolver() *StyleResolver {
	return &StyleResolver{brackets: defaultBrackets}
}

// NewStyleResolverFromBrackets builds a resolver from explicit
// brackets. Brackets must start at zoom 0, ascend strictly by MinZoom,
// and never increase radius or blur with zoom — zooming out must not
// yield a smaller radius than a deeper level.
func NewStyleResolverFromBrackets(brackets []StyleBracket) (*StyleResolver, error) {
	if len(brackets) == 0 {
		return nil, fmt.Errorf("no style brackets given")
	}
	if brackets[0].MinZoom != 0 {
		return nil, fmt.Errorf("first style bracket must start at zoom 0, got %d", brackets[0].MinZoom)
	}

	for i := 1; i < len(brackets); i++ {
		prev, cur := brackets[i-1], brackets[i]
		if cur.MinZoom <= prev.MinZoom {
			return nil, fmt.Errorf("style brackets must ascend by minZoom: %d after %d", cur.MinZoom, prev.MinZoom)
		}
		if cur.Radius > prev.Radius {
			return nil, fmt.Errorf("style radius must not increase with zoom: %g after %g", cur.Radius, prev.Radius)
		}
		if cur.Blur > prev.Blur {
			return nil, fmt.Errorf("style blur must not increase with zoom: %g after %g", cur.Blur, prev.Blur)
		}
		if cur.Opacity > prev.Opacity {
			return nil, fmt.Errorf("style opacity must not increase with zoom: %g after %g", cur.Opacity, prev.Opacity)
		}
	}

	return &StyleResolver{brackets: brackets}, nil
}

// LoadStyleResolver reads style brackets from a YAML file. Path "" is
// not an error and falls back to the built-in brackets.
func LoadStyleResolver(path string) (*StyleResolver, error) {
	if path == "" {
		return NewStyleResolver(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read style config: %w", err)
	}

	var cfg struct {
		Brackets []StyleBracket `yaml:"brackets"`
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse style config: %w", err)
	}

	return NewStyleResolverFromBrackets(cfg.Brackets)
}

// Resolve returns the rendering parameters for a zoom level. Negative
// zoom is clamped to the first bracket so the function stays total.
func (r *StyleResolver) Resolve(zoom int) models.StyleParams {
	selected := r.brackets[0]
	for _, b := range r.brackets[1:] {
		if zoom >= b.MinZoom {
			selected = b
		}
	}

	return models.StyleParams{
		Radius:  selected.Radius,
		Blur:    selected.Blur,
		Opacity: selected.Opacity,
	}
}
