// Package blueprint loads declarative block field definitions from JSON or
// YAML files and replays them through the field tree builder. Keeping
// definitions in files lets plugin authors ship block panels without Go code
// while every document still goes through the same builder rules (default
// section, repeater nesting, trailing conditions).
package blueprint
