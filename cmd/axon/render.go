package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/axon/internal/demo"
	"github.com/vango-dev/axon/internal/errors"
	"github.com/vango-dev/axon/pkg/bind"
	"github.com/vango-dev/axon/pkg/dom/memdom"
)

func renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render <demo>",
		Short: "Print a demo's initial view as HTML",
		Long: `Mount a demo into an in-memory document and print the resulting HTML.

Examples:
  axon render todo
  axon render counter`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := lookupDemo(args[0])
			if err != nil {
				return err
			}

			doc := memdom.New()
			root := bind.Mount(doc, doc.Body(), app())
			defer root.Unmount()

			fmt.Fprintln(cmd.OutOrStdout(), memdom.RenderHTML(root.Node()))
			return nil
		},
	}
}

func demosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demos",
		Short: "List the bundled demos",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range demo.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func lookupDemo(name string) (func() bind.NodeProducer, error) {
	app, ok := demo.Lookup(name)
	if !ok {
		return nil, errors.New("E141").
			WithDetail(fmt.Sprintf("No demo named %q", name)).
			WithSuggestion("Available demos: " + strings.Join(demo.Names(), ", "))
	}
	return app, nil
}
