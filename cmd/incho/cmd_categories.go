package main

import (
	"context"
	"fmt"
	"text/tabwriter"
)

type CategoriesCmd struct {
	Names bool `short:"n" help:"Output only category names (one per line)"`
}

func (cmd *CategoriesCmd) Run(g *Globals) error {
	categories, err := g.Client.Categories(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	if cmd.Names {
		for _, c := range categories {
			fmt.Fprintln(g.Out, c.Name)
		}
		return nil
	}

	if len(categories) == 0 {
		fmt.Fprintln(g.Out, "No categories found.")
		return nil
	}

	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION")
	fmt.Fprintln(w, "----\t-----------")
	for _, c := range categories {
		fmt.Fprintf(w, "%s\t%s\n", c.Name, c.Description)
	}
	return w.Flush()
}
