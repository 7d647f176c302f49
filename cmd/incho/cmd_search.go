package main

import "incho/internal/catalog"

type SearchCmd struct {
	Query string `arg:"" help:"Text to match against product names and descriptions"`
	Sort  string `default:"newest" help:"Sort order (newest, price_asc, price_desc)"`
}

func (cmd *SearchCmd) Run(g *Globals) error {
	products := ProductsCmd{
		Search:   cmd.Query,
		MaxPrice: catalog.DefaultMaxPrice,
		Sort:     cmd.Sort,
	}
	return products.Run(g)
}
