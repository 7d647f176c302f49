package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"incho/internal/cart"
	"incho/internal/catalog"
	"incho/internal/ui"
)

type AdminCmd struct {
	Product  AdminProductCmd  `cmd:"" help:"Manage products"`
	Category AdminCategoryCmd `cmd:"" help:"Manage categories"`
}

type AdminProductCmd struct {
	Create AdminProductCreateCmd `cmd:"" help:"Create a product through a wizard"`
	Edit   AdminProductEditCmd   `cmd:"" help:"Edit product fields"`
	Rm     AdminProductRmCmd     `cmd:"" help:"Delete a product"`
}

type AdminProductCreateCmd struct{}

func validateProductName(name string) error {
	err := catalog.ValidateName(name)
	if errors.Is(err, catalog.ErrEmptyName) {
		return errors.New("Name cannot be empty")
	}
	return err
}

func validatePrice(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("Price must be a number")
	}
	if v < 0 {
		return errors.New("Price cannot be negative")
	}
	return nil
}

func validateStock(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("Stock must be a whole number")
	}
	if v < 0 {
		return errors.New("Stock cannot be negative")
	}
	return nil
}

func (cmd *AdminProductCreateCmd) Run(g *Globals) error {
	ctx := context.Background()

	categories, err := g.Client.Categories(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	var name, category, price, stock, description string

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&name).
				Validate(validateProductName),
		),
	}
	if len(categories) > 0 {
		options := make([]huh.Option[string], len(categories))
		for i, c := range categories {
			options[i] = huh.NewOption(c.Name, c.Name)
		}
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&category),
		))
	} else {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Category").
				Value(&category),
		))
	}
	groups = append(groups,
		huh.NewGroup(
			huh.NewInput().
				Title("Price").
				Value(&price).
				Validate(validatePrice),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Stock").
				Value(&stock).
				Validate(validateStock),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Description("Press Enter to skip").
				Value(&description),
		),
	)

	form := huh.NewForm(groups...).WithTheme(ui.WizardTheme())
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	priceVal, _ := strconv.ParseFloat(strings.TrimSpace(price), 64)
	stockVal, _ := strconv.Atoi(strings.TrimSpace(stock))

	product := catalog.NewProduct(strings.TrimSpace(name), strings.TrimSpace(category), priceVal, stockVal).
		WithDescription(strings.TrimSpace(description))

	fmt.Fprint(g.Out, createSummary(product))

	created, err := g.Client.CreateProduct(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to create product %q: %w", product.Name, err)
	}

	checks := []string{
		fmt.Sprintf("Priced at %s", cart.FormatPrice(created.Price)),
		fmt.Sprintf("%d in stock", created.Stock),
	}
	fmt.Fprint(g.Out, ui.RenderSuccess(created.Name, created.Category, checks))
	return nil
}

// createSummary recaps the wizard answers once every field is done,
// mirroring the completed form above the creation banner.
func createSummary(p catalog.Product) string {
	fields := []ui.Field{
		{Label: "Name", Value: p.Name},
		{Label: "Category", Value: p.Category},
		{Label: "Price", Value: cart.FormatPrice(p.Price)},
		{Label: "Stock", Value: strconv.Itoa(p.Stock)},
		{Label: "Description", Value: p.Description, Optional: true},
	}
	return ui.RenderWizard("Create new product", fields, -1)
}

type AdminProductEditCmd struct {
	Name string `arg:"" help:"Product name" completion:"incho products -n"`

	NewName     *string  `name:"rename" help:"New product name"`
	Description *string  `help:"New description"`
	Price       *float64 `help:"New price"`
	Category    *string  `help:"New category"`
	ImageURL    *string  `name:"image-url" help:"New image URL"`
	Stock       *int     `help:"New stock count"`
}

func (cmd *AdminProductEditCmd) Run(g *Globals) error {
	ctx := context.Background()

	product, err := findProduct(ctx, g.Client, cmd.Name)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	patch := catalog.ProductPatch{
		Name:        cmd.NewName,
		Description: cmd.Description,
		Price:       cmd.Price,
		Category:    cmd.Category,
		ImageURL:    cmd.ImageURL,
		Stock:       cmd.Stock,
	}
	if patch.IsZero() {
		return errors.New("nothing to change, pass at least one field flag")
	}

	updated, err := g.Client.UpdateProduct(ctx, product.ID, patch)
	if err != nil {
		return fmt.Errorf("failed to update product %q: %w", product.Name, err)
	}

	fmt.Fprintf(g.Out, "Updated: %s\n", updated.Name)
	return nil
}

type AdminProductRmCmd struct {
	Name string `arg:"" help:"Product name" completion:"incho products -n"`
}

func (cmd *AdminProductRmCmd) Run(g *Globals) error {
	ctx := context.Background()

	product, err := findProduct(ctx, g.Client, cmd.Name)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	if err := g.Client.DeleteProduct(ctx, product.ID); err != nil {
		return fmt.Errorf("failed to delete product %q: %w", product.Name, err)
	}

	fmt.Fprintf(g.Out, "Deleted: %s\n", product.Name)
	return nil
}

type AdminCategoryCmd struct {
	Create AdminCategoryCreateCmd `cmd:"" help:"Create a category"`
	Edit   AdminCategoryEditCmd   `cmd:"" help:"Edit category fields"`
	Rm     AdminCategoryRmCmd     `cmd:"" help:"Delete a category"`
}

type AdminCategoryCreateCmd struct {
	Name        string `arg:"" help:"Category name"`
	Description string `short:"d" help:"Category description"`
}

func (cmd *AdminCategoryCreateCmd) Run(g *Globals) error {
	category := catalog.NewCategory(cmd.Name, cmd.Description)

	created, err := g.Client.CreateCategory(context.Background(), category)
	if err != nil {
		return fmt.Errorf("failed to create category %q: %w", category.Name, err)
	}

	fmt.Fprintf(g.Out, "Created: %s\n", created.Name)
	return nil
}

type AdminCategoryEditCmd struct {
	Name string `arg:"" help:"Category name" completion:"incho categories -n"`

	NewName     *string `name:"rename" help:"New category name"`
	Description *string `help:"New description"`
}

func (cmd *AdminCategoryEditCmd) Run(g *Globals) error {
	ctx := context.Background()

	category, err := findCategory(ctx, g.Client, cmd.Name)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	patch := catalog.CategoryPatch{Name: cmd.NewName, Description: cmd.Description}
	if patch.IsZero() {
		return errors.New("nothing to change, pass at least one field flag")
	}

	updated, err := g.Client.UpdateCategory(ctx, category.ID, patch)
	if err != nil {
		return fmt.Errorf("failed to update category %q: %w", category.Name, err)
	}

	fmt.Fprintf(g.Out, "Updated: %s\n", updated.Name)
	return nil
}

type AdminCategoryRmCmd struct {
	Name string `arg:"" help:"Category name" completion:"incho categories -n"`
}

func (cmd *AdminCategoryRmCmd) Run(g *Globals) error {
	ctx := context.Background()

	category, err := findCategory(ctx, g.Client, cmd.Name)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	if err := g.Client.DeleteCategory(ctx, category.ID); err != nil {
		return fmt.Errorf("failed to delete category %q: %w", category.Name, err)
	}

	fmt.Fprintf(g.Out, "Deleted: %s\n", category.Name)
	return nil
}
