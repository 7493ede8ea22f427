package commands

import (
	"io"

	"github.com/alecthomas/kong"
)

// Execute parses args and runs the selected command. Output goes to stdout
// unless --output is set.
func Execute(args []string, stdout io.Writer, options ...kong.Option) error {
	var cli CLI
	cli.stdout = stdout

	options = append([]kong.Option{
		kong.Name("blockfields"),
		kong.Description("Build block editor field documents from blueprints and OpenAPI schemas."),
		kong.UsageOnError(),
	}, options...)
	parser, err := kong.New(&cli, options...)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return ctx.Run(&cli)
}
