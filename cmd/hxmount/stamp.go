package main

import (
	"os"

	"github.com/pthm/hxmount"
	"github.com/pthm/hxmount/lib/dom"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

func stampCmd() *cobra.Command {
	var (
		selector string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "stamp <file|->",
		Short: "Write the document with signed props on every matching element",
		Long: `Mount a no-op component on every element matching --selector with
stamping enabled, then write the document. Each element gains an hx-props
attribute holding its props, signed with --key (or encrypted with
--sensitive). Read a stamp back with "hxmount verify".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			enc, err := newEncoder(v)
			if err != nil {
				return err
			}

			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}

			m := hxmount.NewMounter(
				hxmount.WithStamp(enc, v.GetBool("sensitive")),
				hxmount.WithLogger(newLogger(cmd, v)),
			)
			res := m.Mount(cmd.Context(), doc, selector, hxmount.ConstructorFunc(func(node *html.Node, p hxmount.Props) (any, error) {
				return node, nil
			}), nil)
			cmd.PrintErrf("stamped %d element(s)\n", res.Len())

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return dom.Render(w, doc)
		},
	}

	cmd.Flags().StringVarP(&selector, "selector", "s", "", "CSS selector of mount points")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the document to a file instead of stdout")
	cmd.MarkFlagRequired("selector")

	return cmd
}
