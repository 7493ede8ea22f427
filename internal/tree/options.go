package tree

// Choice is one entry of a Select control.
type Choice struct {
	Label string
	Value any
}

// Color is one swatch of a ColorPalette control.
type Color struct {
	Name  string
	Color string
	Slug  string
}

// Choices converts choice entries into the "choices" option shape. The result
// uses generic maps so it compares equal to decoded documents.
func Choices(choices ...Choice) []any {
	out := make([]any, 0, len(choices))
	for _, choice := range choices {
		out = append(out, map[string]any{
			"label": choice.Label,
			"value": choice.Value,
		})
	}
	return out
}

// Colors converts palette swatches into the "colors" option shape.
func Colors(colors ...Color) []any {
	out := make([]any, 0, len(colors))
	for _, color := range colors {
		out = append(out, map[string]any{
			"name":  color.Name,
			"color": color.Color,
			"slug":  color.Slug,
		})
	}
	return out
}

// Merge combines option maps left to right; later keys win.
func Merge(sets ...Options) Options {
	var out Options
	for _, set := range sets {
		for key, value := range set {
			if out == nil {
				out = make(Options)
			}
			out[key] = value
		}
	}
	return out
}
