// Package fields exposes the block field tree builder. A Builder assembles
// the declarative Document an editor panel renders: top-level sections
// (accordion panels), leaf controls such as Text, Toggle or Range, repeaters
// whose children form a repeatable group, and visibility conditions tied to
// the value of a sibling field. The builder only records structure; option
// maps are passed through untouched so renderers can evolve their control
// settings without changes here. Misuse such as nesting repeaters or building
// with a repeater still open is reported through Err and Build as errors
// wrapping ErrInvalidBuilderState. Documents encode to flat JSON or YAML
// objects where options sit next to name and type.
package fields
