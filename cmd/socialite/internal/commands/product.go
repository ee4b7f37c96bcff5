package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mathenaangeles/socialite/internal/api"
	"github.com/mathenaangeles/socialite/internal/models"
)

// ProductCmd groups product operations.
type ProductCmd struct {
	Create ProductCreateCmd `cmd:"" help:"Create a product"`
	Show   ProductShowCmd   `cmd:"" help:"Show a product"`
	Update ProductUpdateCmd `cmd:"" help:"Update a product"`
	Delete ProductDeleteCmd `cmd:"" help:"Delete a product"`
	List   ProductListCmd   `cmd:"" help:"List products"`
}

type ProductCreateCmd struct {
	Name        string   `arg:"" help:"Product name"`
	Price       float64  `required:"" help:"Unit price"`
	Currency    string   `default:"USD" help:"Price currency code"`
	Description string   `help:"Product description"`
	Category    string   `help:"Product category"`
	Stocks      int      `help:"Units in stock"`
	Image       []string `type:"existingfile" help:"Image file to upload, repeatable"`
}

func (p *ProductCreateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	product, err := app.store.CreateProduct(ctx, api.ProductParams{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		Category:    p.Category,
		Stocks:      p.Stocks,
		Images:      p.Image,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Product %s created with ID %s\n", product.Name, product.ID)
	return nil
}

type ProductShowCmd struct {
	ID string `arg:"" help:"Product ID"`
}

func (p *ProductShowCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	product, err := app.store.GetProduct(ctx, p.ID)
	if err != nil {
		return err
	}

	if app.output == "json" {
		return printJSON(product)
	}

	printProduct(product)
	return nil
}

func printProduct(p *models.Product) {
	field("ID", p.ID)
	field("Name", p.Name)
	field("Description", p.Description)
	field("Price", formatPrice(p.Price, p.Currency))
	field("Category", p.Category)
	field("Stocks", strconv.Itoa(p.Stocks))
	field("Sales", strconv.Itoa(p.Sales))
	for _, img := range p.Images {
		field("Image", img)
	}
}

func formatPrice(price float64, currency string) string {
	if currency == "" {
		return strconv.FormatFloat(price, 'f', 2, 64)
	}
	return fmt.Sprintf("%.2f %s", price, currency)
}

type ProductUpdateCmd struct {
	ID          string   `arg:"" help:"Product ID"`
	Name        string   `help:"New name"`
	Price       float64  `help:"New unit price"`
	Currency    string   `help:"New currency code"`
	Description string   `help:"New description"`
	Category    string   `help:"New category"`
	Stocks      int      `help:"New stock count"`
	Image       []string `type:"existingfile" help:"Image file to upload, repeatable"`
}

func (p *ProductUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	// The server commits every key present in the payload, so start from the
	// stored record and overlay only the flags that were set. Images carries
	// local paths, not the stored filenames, so only new attachments go up.
	current, err := app.store.GetProduct(ctx, p.ID)
	if err != nil {
		return err
	}

	params := api.ProductParams{
		Name:        current.Name,
		Description: current.Description,
		Price:       current.Price,
		Currency:    current.Currency,
		Category:    current.Category,
		Stocks:      current.Stocks,
		Images:      p.Image,
	}
	if p.Name != "" {
		params.Name = p.Name
	}
	if p.Description != "" {
		params.Description = p.Description
	}
	if p.Price != 0 {
		params.Price = p.Price
	}
	if p.Currency != "" {
		params.Currency = p.Currency
	}
	if p.Category != "" {
		params.Category = p.Category
	}
	if p.Stocks != 0 {
		params.Stocks = p.Stocks
	}

	product, err := app.store.UpdateProduct(ctx, p.ID, params)
	if err != nil {
		return err
	}

	fmt.Printf("Product %s updated\n", product.Name)
	return nil
}

type ProductDeleteCmd struct {
	ID string `arg:"" help:"Product ID"`
}

func (p *ProductDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	if err := app.store.DeleteProduct(ctx, p.ID); err != nil {
		return err
	}

	fmt.Printf("Product %s deleted\n", p.ID)
	return nil
}

type ProductListCmd struct{}

func (p *ProductListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	products, err := app.store.ListProducts(ctx)
	if err != nil {
		return err
	}

	if app.output == "json" {
		return printJSON(products)
	}

	if len(products) == 0 {
		fmt.Println("No products found.")
		return nil
	}

	rows := make([][]string, 0, len(products))
	for _, product := range products {
		rows = append(rows, []string{
			product.ID,
			truncate(product.Name, 30),
			formatPrice(product.Price, product.Currency),
			product.Category,
			strconv.Itoa(product.Stocks),
			strconv.Itoa(product.Sales),
		})
	}
	table([]string{"ID", "NAME", "PRICE", "CATEGORY", "STOCKS", "SALES"}, rows)
	return nil
}
