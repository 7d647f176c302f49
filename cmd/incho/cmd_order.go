package main

import (
	"context"
	"fmt"

	"incho/internal/cart"
)

type OrderCmd struct {
	Name string `arg:"" help:"Product name" completion:"incho products -n"`
}

func (cmd *OrderCmd) Run(g *Globals) error {
	product, err := findProduct(context.Background(), g.Client, cmd.Name)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	fmt.Fprintln(g.Out, cart.OrderProductMessage(product))
	fmt.Fprintln(g.Out)
	fmt.Fprintln(g.Out, cart.OrderProductURL(product, g.Cfg.WhatsAppNumber))
	return nil
}
