package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-blockfields"
	pkgopenapi "github.com/goliatone/go-blockfields/pkg/openapi"
)

// ImportCmd implements the 'import' command.
type ImportCmd struct {
	Source       string        `short:"s" help:"OpenAPI document path or URL" required:""`
	Schema       string        `arg:"" optional:"" help:"Component schema to convert; lists the schemas when empty"`
	ExternalRefs bool          `name:"external-refs" help:"Resolve references to other documents"`
	SkipReadOnly bool          `name:"skip-readonly" help:"Leave readOnly properties out"`
	Timeout      time.Duration `help:"Timeout for remote documents and references" default:"30s"`
}

func (i *ImportCmd) Run(root *CLI) error {
	ctx := context.Background()
	location := strings.TrimSpace(i.Source)
	if location == "" {
		return fmt.Errorf("empty source")
	}

	doc, err := pkgopenapi.Load(ctx, location,
		pkgopenapi.WithHTTPClient(&http.Client{Timeout: i.Timeout}),
		pkgopenapi.WithExternalRefs(i.ExternalRefs),
	)
	if err != nil {
		return err
	}

	if i.Schema == "" {
		for _, name := range doc.Schemas() {
			fmt.Fprintln(root.out(), name)
		}
		return nil
	}

	importer := blockfields.NewImporter(
		pkgopenapi.WithSkipReadOnly(i.SkipReadOnly),
		pkgopenapi.WithBuilderOptions(root.BuilderOptions()...),
	)
	fieldsDoc, err := importer.Import(ctx, doc, i.Schema)
	if err != nil {
		return fmt.Errorf("import %s: %w", i.Schema, err)
	}
	slog.Debug("Schema imported", "source", doc.Location(), "schema", i.Schema, "sections", len(fieldsDoc))
	return root.WriteDocument(fieldsDoc)
}
