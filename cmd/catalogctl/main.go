// catalogctl is a small operator CLI for a running catalog server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"catalog/internal/client"
	"catalog/internal/models"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addrFlag := &cli.StringFlag{
		Name:  "addr",
		Usage: "base URL of the catalog server",
		Value: "http://localhost:8080",
	}

	app := &cli.Command{
		Name:  "catalogctl",
		Usage: "manage products in a catalog server",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list products, optionally one category",
				Flags:  []cli.Flag{addrFlag, &cli.StringFlag{Name: "category", Usage: "exact category filter"}},
				Action: listAction,
			},
			{
				Name:   "search",
				Usage:  "search products by name or category substring",
				Flags:  []cli.Flag{addrFlag, &cli.StringFlag{Name: "q", Usage: "search text", Required: true}},
				Action: searchAction,
			},
			{
				Name:  "add",
				Usage: "create a product",
				Flags: []cli.Flag{
					addrFlag,
					&cli.StringFlag{Name: "name", Required: true},
					&cli.FloatFlag{Name: "price", Required: true},
					&cli.StringFlag{Name: "category", Usage: fmt.Sprintf("one of %v", models.Categories), Required: true},
					&cli.StringFlag{Name: "description", Required: true},
					&cli.StringFlag{Name: "image", Usage: "image URI"},
				},
				Action: addAction,
			},
			{
				Name:  "update",
				Usage: "update fields of a product by id",
				Flags: []cli.Flag{
					addrFlag,
					&cli.StringFlag{Name: "id", Required: true},
					&cli.StringFlag{Name: "name"},
					&cli.FloatFlag{Name: "price"},
					&cli.StringFlag{Name: "category"},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "image"},
				},
				Action: updateAction,
			},
			{
				Name:   "delete",
				Usage:  "delete a product by id",
				Flags:  []cli.Flag{addrFlag, &cli.StringFlag{Name: "id", Required: true}},
				Action: deleteAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	api := client.New(cmd.String("addr"))
	products, err := api.List(ctx, cmd.String("category"))
	if err != nil {
		return err
	}
	printProducts(products)
	return nil
}

func searchAction(ctx context.Context, cmd *cli.Command) error {
	api := client.New(cmd.String("addr"))
	products, err := api.Search(ctx, cmd.String("q"))
	if err != nil {
		return err
	}
	printProducts(products)
	return nil
}

func addAction(ctx context.Context, cmd *cli.Command) error {
	api := client.New(cmd.String("addr"))
	created, err := api.Create(ctx, client.CreateParams{
		Name:        cmd.String("name"),
		Price:       cmd.Float("price"),
		Category:    cmd.String("category"),
		Description: cmd.String("description"),
		Image:       cmd.String("image"),
	})
	if err != nil {
		return err
	}
	return printJSON(created)
}

func updateAction(ctx context.Context, cmd *cli.Command) error {
	api := client.New(cmd.String("addr"))

	var fields models.ProductUpdate
	if cmd.IsSet("name") {
		name := cmd.String("name")
		fields.Name = &name
	}
	if cmd.IsSet("price") {
		price := cmd.Float("price")
		fields.Price = &price
	}
	if cmd.IsSet("category") {
		category := cmd.String("category")
		fields.Category = &category
	}
	if cmd.IsSet("description") {
		description := cmd.String("description")
		fields.Description = &description
	}
	if cmd.IsSet("image") {
		image := cmd.String("image")
		fields.Image = &image
	}

	updated, err := api.Update(ctx, cmd.String("id"), fields)
	if err != nil {
		return err
	}
	return printJSON(updated)
}

func deleteAction(ctx context.Context, cmd *cli.Command) error {
	api := client.New(cmd.String("addr"))
	if err := api.Delete(ctx, cmd.String("id")); err != nil {
		return err
	}
	fmt.Println("product deleted")
	return nil
}

func printProducts(products []models.Product) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tCATEGORY")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\n", p.ID.Hex(), p.Name, p.Price, p.Category)
	}
	w.Flush()
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
