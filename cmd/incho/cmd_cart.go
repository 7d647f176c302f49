package main

import (
	"context"
	"errors"
	"fmt"

	"incho/internal/cart"
)

type CartCmd struct {
	Show     CartShowCmd     `cmd:"" default:"1" help:"Show the cart contents"`
	Add      CartAddCmd      `cmd:"" help:"Add a product to the cart"`
	Rm       CartRmCmd       `cmd:"" help:"Remove an item from the cart"`
	Set      CartSetCmd      `cmd:"" help:"Set the quantity of a cart item"`
	Clear    CartClearCmd    `cmd:"" help:"Empty the cart"`
	Checkout CartCheckoutCmd `cmd:"" help:"Produce the WhatsApp checkout link"`
}

type CartShowCmd struct{}

func (cmd *CartShowCmd) Run(g *Globals) error {
	fmt.Fprint(g.Out, g.Render.RenderCart(cartView(g.Cart)))
	return nil
}

type CartAddCmd struct {
	Name string `arg:"" help:"Product name" completion:"incho products -n"`
	Qty  int    `short:"q" default:"1" help:"Quantity to add"`
}

func (cmd *CartAddCmd) Run(g *Globals) error {
	product, err := findProduct(context.Background(), g.Client, cmd.Name)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	if err := g.Cart.Add(product, cmd.Qty); err != nil {
		// The notifier has already told the user about the stock limit.
		if errors.Is(err, cart.ErrInsufficientStock) {
			return nil
		}
		return err
	}
	return nil
}

type CartRmCmd struct {
	Name string `arg:"" help:"Cart item name or product ID"`
}

func (cmd *CartRmCmd) Run(g *Globals) error {
	entry, err := findEntry(g.Cart, cmd.Name)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	g.Cart.Remove(entry.ID)
	return nil
}

type CartSetCmd struct {
	Name string `arg:"" help:"Cart item name or product ID"`
	Qty  int    `arg:"" help:"New quantity (0 removes the item)"`
}

func (cmd *CartSetCmd) Run(g *Globals) error {
	entry, err := findEntry(g.Cart, cmd.Name)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	if err := g.Cart.SetQuantity(entry.ID, cmd.Qty); err != nil {
		if errors.Is(err, cart.ErrInsufficientStock) {
			return nil
		}
		return err
	}
	return nil
}

type CartClearCmd struct{}

func (cmd *CartClearCmd) Run(g *Globals) error {
	g.Cart.Clear()
	return nil
}

type CartCheckoutCmd struct {
	MessageOnly bool `help:"Output the order message without the link"`
}

func (cmd *CartCheckoutCmd) Run(g *Globals) error {
	if g.Cart.Len() == 0 {
		fmt.Fprintln(g.Out, "Your cart is empty.")
		return nil
	}

	fmt.Fprintln(g.Out, g.Cart.CheckoutMessage())
	if !cmd.MessageOnly {
		fmt.Fprintln(g.Out)
		fmt.Fprintln(g.Out, g.Cart.CheckoutURL(g.Cfg.WhatsAppNumber))
	}
	return nil
}
