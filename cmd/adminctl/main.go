package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/srisaikitchen/storefront/internal/adminsync"
	"github.com/srisaikitchen/storefront/pkg/config"
	"github.com/srisaikitchen/storefront/pkg/logger"
	"github.com/srisaikitchen/storefront/pkg/rest"
)

const usage = `usage: adminctl <command> [args]

commands:
  products                          list products with their variants
  create <product.json>             create a product from a JSON file
  update <id> <product.json>        patch product fields from a JSON file
  delete <id>                       delete a product and its variants
  sync <product-id> <edits.json>    reconcile a variant edit session
  orders [-limit n] [-offset n]     list placed orders
`

// editFile is the on-disk shape for a variant edit session. original_ids is
// the backend id set captured when the session began; rows without an id are
// created, rows with one are updated, originals missing from the rows are
// deleted.
type editFile struct {
	OriginalIDs []int64 `json:"original_ids"`
	Edits       []struct {
		ID     *int64  `json:"id"`
		Weight string  `json:"weight"`
		Price  float64 `json:"price"`
	} `json:"edits"`
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "adminctl"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Debug(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "adminctl",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	client, err := rest.NewClient(cfg.API, logg)
	if err != nil {
		logg.Error(ctx, "failed to build rest client", err)
		os.Exit(1)
	}
	svc, err := adminsync.NewService(client, logg)
	if err != nil {
		logg.Error(ctx, "failed to build admin service", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(ctx, svc, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, svc *adminsync.Service, command string, args []string) error {
	switch command {
	case "products":
		return listProducts(ctx, svc)
	case "create":
		return createProduct(ctx, svc, args)
	case "update":
		return updateProduct(ctx, svc, args)
	case "delete":
		return deleteProduct(ctx, svc, args)
	case "sync":
		return syncVariants(ctx, svc, args)
	case "orders":
		return listOrders(ctx, svc, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func listProducts(ctx context.Context, svc *adminsync.Service) error {
	products, err := svc.ListProducts(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Printf("%-6d %-30s %s\n", p.ID, p.Name, p.Category)
		for _, v := range p.Variants {
			fmt.Printf("       %-6d %-10s ₹%.2f\n", v.ID, v.Weight, v.Price)
		}
	}
	return nil
}

func createProduct(ctx context.Context, svc *adminsync.Service, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: create <product.json>")
	}
	var input adminsync.ProductCreate
	if err := decodeFile(args[0], &input); err != nil {
		return err
	}
	created, err := svc.CreateProduct(ctx, input)
	if err != nil {
		return err
	}
	fmt.Printf("created product %d (%s) with %d variants\n", created.ID, created.Name, len(created.Variants))
	return nil
}

func updateProduct(ctx context.Context, svc *adminsync.Service, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: update <id> <product.json>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	var input adminsync.ProductUpdate
	if err := decodeFile(args[1], &input); err != nil {
		return err
	}
	updated, err := svc.UpdateProduct(ctx, id, input)
	if err != nil {
		return err
	}
	fmt.Printf("updated product %d (%s)\n", updated.ID, updated.Name)
	return nil
}

func deleteProduct(ctx context.Context, svc *adminsync.Service, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := svc.DeleteProduct(ctx, id); err != nil {
		return err
	}
	fmt.Printf("deleted product %d\n", id)
	return nil
}

func syncVariants(ctx context.Context, svc *adminsync.Service, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: sync <product-id> <edits.json>")
	}
	productID, err := parseID(args[0])
	if err != nil {
		return err
	}
	var file editFile
	if err := decodeFile(args[1], &file); err != nil {
		return err
	}

	edits := make([]adminsync.VariantEdit, 0, len(file.Edits))
	for _, row := range file.Edits {
		edits = append(edits, adminsync.VariantEdit{
			ID:     row.ID,
			Weight: row.Weight,
			Price:  decimal.NewFromFloat(row.Price),
		})
	}

	report, err := svc.SyncVariants(ctx, productID, file.OriginalIDs, edits)
	if err != nil {
		return err
	}
	fmt.Printf("deleted %d, updated %d, created %d\n", len(report.Deleted), len(report.Updated), len(report.Created))
	if report.DeleteFailures != nil {
		fmt.Fprintf(os.Stderr, "some deletions failed: %v\n", report.DeleteFailures)
	}
	return nil
}

func listOrders(ctx context.Context, svc *adminsync.Service, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	limit := fs.Int("limit", 50, "page size")
	offset := fs.Int("offset", 0, "page offset")
	fs.Parse(args)

	orders, err := svc.ListOrders(ctx, *limit, *offset)
	if err != nil {
		return err
	}
	for _, order := range orders {
		fmt.Printf("#%-6d %-25s %-12s %s\n", order.ID, order.CustomerName, order.Phone, order.PaymentMethod)
		for _, item := range order.Items {
			fmt.Printf("        variant %-6d ×%-3d ₹%.2f\n", item.VariantID, item.Quantity, item.Price)
		}
	}
	return nil
}

func decodeFile(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	decoder := json.NewDecoder(f)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be a number, got %q", raw)
	}
	return id, nil
}
