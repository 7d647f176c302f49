package main

import (
	"io"

	"go.uber.org/zap"

	"incho/cmd/incho/render"
	"incho/internal/cart"
	"incho/internal/catalog"
	"incho/internal/config"
)

type Globals struct {
	Client catalog.Client
	Cart   *cart.Store
	Cfg    config.Config
	Out    io.Writer
	Render render.Renderer
	Log    *zap.Logger
}
