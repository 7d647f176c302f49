package main

import (
	"incho/internal/query"
	"incho/internal/ui"
)

type BrowseCmd struct{}

func (cmd *BrowseCmd) Run(g *Globals) error {
	ctrl := query.New(g.Client,
		query.WithQuietPeriod(g.Cfg.QuietPeriod()),
		query.WithLogger(g.Log),
	)
	defer ctrl.Close()

	return ui.RunShop(ctrl, g.Cart, g.Cfg.WhatsAppNumber)
}
