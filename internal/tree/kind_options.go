package tree

// Typed option shapes for the common kinds. The map form stays canonical;
// each shape converts with Options() and leaves zero values out, so the
// result compares equal to a hand-written map with the same keys.

// TextOptions covers Text, Textarea and RichText controls.
type TextOptions struct {
	Label       string
	Help        string
	Placeholder string
	Value       string
	Meta        map[string]any
}

func (o TextOptions) Options() Options {
	out := Options{}
	setString(out, "label", o.Label)
	setString(out, "help", o.Help)
	setString(out, "placeholder", o.Placeholder)
	setString(out, "value", o.Value)
	setMeta(out, o.Meta)
	return nilIfEmpty(out)
}

// ToggleOptions covers Toggle controls. Value is always emitted.
type ToggleOptions struct {
	Label string
	Help  string
	Value bool
	Meta  map[string]any
}

func (o ToggleOptions) Options() Options {
	out := Options{"value": o.Value}
	setString(out, "label", o.Label)
	setString(out, "help", o.Help)
	setMeta(out, o.Meta)
	return out
}

// RangeOptions covers Range controls. Min, Max and Step are always emitted;
// Value only when set.
type RangeOptions struct {
	Label       string
	Help        string
	Placeholder string
	Min         float64
	Max         float64
	Step        float64
	Value       *float64
	Meta        map[string]any
}

func (o RangeOptions) Options() Options {
	out := Options{"min": o.Min, "max": o.Max, "step": o.Step}
	setString(out, "label", o.Label)
	setString(out, "help", o.Help)
	setString(out, "placeholder", o.Placeholder)
	if o.Value != nil {
		out["value"] = *o.Value
	}
	setMeta(out, o.Meta)
	return out
}

// SelectOptions covers Select controls.
type SelectOptions struct {
	Label    string
	Help     string
	Choices  []Choice
	Value    any
	Multiple bool
	Meta     map[string]any
}

func (o SelectOptions) Options() Options {
	out := Options{"choices": Choices(o.Choices...)}
	setString(out, "label", o.Label)
	setString(out, "help", o.Help)
	if o.Value != nil {
		out["value"] = o.Value
	}
	if o.Multiple {
		out["multiple"] = true
	}
	setMeta(out, o.Meta)
	return out
}

// ColorPaletteOptions covers ColorPalette controls.
type ColorPaletteOptions struct {
	Label  string
	Help   string
	Colors []Color
	Value  string
	Meta   map[string]any
}

func (o ColorPaletteOptions) Options() Options {
	out := Options{"colors": Colors(o.Colors...)}
	setString(out, "label", o.Label)
	setString(out, "help", o.Help)
	setString(out, "value", o.Value)
	setMeta(out, o.Meta)
	return out
}

// TimePickerOptions covers TimePicker controls.
type TimePickerOptions struct {
	Label    string
	Help     string
	Is12Hour bool
	Meta     map[string]any
}

func (o TimePickerOptions) Options() Options {
	out := Options{}
	setString(out, "label", o.Label)
	setString(out, "help", o.Help)
	if o.Is12Hour {
		out["is12hour"] = true
	}
	setMeta(out, o.Meta)
	return nilIfEmpty(out)
}

func setString(out Options, key, value string) {
	if value != "" {
		out[key] = value
	}
}

func setMeta(out Options, meta map[string]any) {
	if len(meta) > 0 {
		out["meta"] = cloneValue(meta)
	}
}

func nilIfEmpty(out Options) Options {
	if len(out) == 0 {
		return nil
	}
	return out
}
