package fields

import "github.com/goliatone/go-blockfields/internal/tree"

// Kind re-exports the internal Kind enumeration.
type Kind = tree.Kind

const (
	KindTimePicker   = tree.KindTimePicker
	KindFile         = tree.KindFile
	KindLink         = tree.KindLink
	KindText         = tree.KindText
	KindTextarea     = tree.KindTextarea
	KindToggle       = tree.KindToggle
	KindColorPalette = tree.KindColorPalette
	KindColorPicker  = tree.KindColorPicker
	KindSelect       = tree.KindSelect
	KindMessage      = tree.KindMessage
	KindImage        = tree.KindImage
	KindRichText     = tree.KindRichText
	KindRange        = tree.KindRange
	KindRepeater     = tree.KindRepeater
	KindSection      = tree.KindSection
)

type Options = tree.Options
type Condition = tree.Condition
type Field = tree.Field
type Document = tree.Document
type Choice = tree.Choice
type Color = tree.Color
type State = tree.State
type StateError = tree.StateError
type OptionError = tree.OptionError
type LabelResolver = tree.LabelResolver
type Translator = tree.Translator
type CatalogTranslator = tree.CatalogTranslator

const (
	StateIdle     = tree.StateIdle
	StateSection  = tree.StateSection
	StateRepeater = tree.StateRepeater
)

// DefaultSectionLabel is the lookup key for the implicit section name.
const DefaultSectionLabel = tree.DefaultSectionLabel

var (
	ErrInvalidBuilderState = tree.ErrInvalidBuilderState
	ErrInvalidOption       = tree.ErrInvalidOption
	ErrMissingTranslation  = tree.ErrMissingTranslation
)

// ControlKinds lists the leaf kinds with a dedicated Add* method.
func ControlKinds() []Kind { return tree.ControlKinds() }

// Choices builds the "choices" option of a Select control.
func Choices(choices ...Choice) []any { return tree.Choices(choices...) }

// Colors builds the "colors" option of a ColorPalette control.
func Colors(colors ...Color) []any { return tree.Colors(colors...) }

// Merge combines option maps; later keys win.
func Merge(sets ...Options) Options { return tree.Merge(sets...) }

// DefaultLabeler turns a field name into a display label.
func DefaultLabeler(name string) string { return tree.DefaultLabeler(name) }

// NewCatalogTranslator returns a translator seeded with the bundled default
// section labels.
func NewCatalogTranslator() *CatalogTranslator { return tree.NewCatalogTranslator() }

// Typed option shapes; each converts to Options via Options().
type (
	TextOptions         = tree.TextOptions
	ToggleOptions       = tree.ToggleOptions
	RangeOptions        = tree.RangeOptions
	SelectOptions       = tree.SelectOptions
	ColorPaletteOptions = tree.ColorPaletteOptions
	TimePickerOptions   = tree.TimePickerOptions
)
