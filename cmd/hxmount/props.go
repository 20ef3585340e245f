package main

import (
	"github.com/pthm/hxmount"
	"github.com/pthm/hxmount/lib/dom"
	"github.com/spf13/cobra"
)

// mountPoint describes one element matched by a selector.
type mountPoint struct {
	Index int           `json:"index" yaml:"index"`
	Tag   string        `json:"tag" yaml:"tag"`
	ID    string        `json:"id,omitempty" yaml:"id,omitempty"`
	Props hxmount.Props `json:"props" yaml:"props"`
}

func propsCmd() *cobra.Command {
	var selector string

	cmd := &cobra.Command{
		Use:   "props <file|->",
		Short: "Print the props each matching element would receive",
		Long: `Print the props a component mounted on each element matching --selector
would receive, in document order. The mount node itself is omitted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}

			nodes, err := dom.QueryAll(doc, selector)
			if err != nil {
				return err
			}

			points := []mountPoint{}
			for _, n := range nodes {
				if !dom.IsElement(n) {
					continue
				}
				points = append(points, mountPoint{
					Index: len(points),
					Tag:   n.Data,
					ID:    dom.Attr(n, "id", ""),
					Props: hxmount.BuildProps(n, nil).Without(hxmount.MountNodeKey),
				})
			}

			return writeValue(cmd.OutOrStdout(), v.GetString("format"), points)
		},
	}

	cmd.Flags().StringVarP(&selector, "selector", "s", "", "CSS selector of mount points")
	cmd.MarkFlagRequired("selector")

	return cmd
}
