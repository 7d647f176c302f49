package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"incho/cmd/incho/render"
	"incho/internal/cart"
	"incho/internal/catalog"
	"incho/internal/config"
)

type CLI struct {
	Products   ProductsCmd   `cmd:"" aliases:"ls" help:"List products, optionally filtered and sorted"`
	Search     SearchCmd     `cmd:"" aliases:"s" help:"Search products by name or description"`
	Categories CategoriesCmd `cmd:"" help:"List product categories"`
	Browse     BrowseCmd     `cmd:"" aliases:"b" help:"Browse the catalog interactively"`
	Order      OrderCmd      `cmd:"" help:"Get a WhatsApp link to order a single product"`
	Cart       CartCmd       `cmd:"" aliases:"c" help:"Manage the shopping cart"`
	Admin      AdminCmd      `cmd:"" help:"Manage products and categories on the backend"`

	ConfigPath string `name:"config" help:"Path to settings file"`
	Backend    string `help:"Backend base URL (overrides settings)"`
	CartFile   string `help:"Path to cart file"`
}

func (c *CLI) AfterApply(ctx *kong.Context) error {
	configPath, err := resolvePath(c.ConfigPath, config.DefaultConfigPath)
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if c.Backend != "" {
		cfg.BackendURL = c.Backend
	}

	log := newFileLogger(config.DefaultLogPath())

	cartPath, err := resolvePath(c.CartFile, config.DefaultCartPath)
	if err != nil {
		return err
	}
	store, err := cart.Open(cartPath,
		cart.WithNotifier(cart.WriterNotifier{Out: os.Stdout}),
		cart.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("failed to open cart: %w", err)
	}
	log.Info("cart opened", zap.String("path", config.ShortenPath(cartPath)))

	globals := &Globals{
		Client: catalog.NewHTTPClient(cfg.BackendURL, log),
		Cart:   store,
		Cfg:    cfg,
		Out:    os.Stdout,
		Render: render.NewLipglossRendererAuto(os.Stdout),
		Log:    log,
	}
	ctx.Bind(globals)
	return nil
}

// resolvePath expands a user-supplied flag path, falling back to the
// XDG default when the flag is unset.
func resolvePath(flag string, fallback func() string) (string, error) {
	if flag == "" {
		return fallback(), nil
	}
	return config.ExpandPath(flag)
}

// newFileLogger logs to the XDG state directory so command output
// stays clean. Logging never blocks the storefront: any setup failure
// degrades to a no-op logger.
func newFileLogger(path string) *zap.Logger {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zap.NewNop()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("incho"),
		kong.Description("Storefront client for the incho tools shop"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
