package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/srisaikitchen/storefront/internal/cart"
	"github.com/srisaikitchen/storefront/internal/catalog"
	"github.com/srisaikitchen/storefront/internal/checkout"
	"github.com/srisaikitchen/storefront/internal/prefs"
	"github.com/srisaikitchen/storefront/internal/selection"
	"github.com/srisaikitchen/storefront/pkg/config"
	"github.com/srisaikitchen/storefront/pkg/enums"
	pkgerrors "github.com/srisaikitchen/storefront/pkg/errors"
	"github.com/srisaikitchen/storefront/pkg/logger"
	"github.com/srisaikitchen/storefront/pkg/rest"
)

const usage = `usage: storefront <command> [args]

commands:
  products [-category name]        list the catalog
  product <slug>                   show one product with its variants
  add <slug> <label> <qty>         add a variant to the cart
  cart                             show cart lines and totals
  qty <product-id> <label> <n>     change a line quantity (0 removes)
  remove <product-id> <label>      remove a line
  clear                            empty the cart
  checkout [flags]                 place the order (see checkout -h)
  theme [name]                     show or set the theme preference
`

type app struct {
	cfg       *config.Config
	logg      *logger.Logger
	directory *catalog.Directory
	cartStore *cart.Store
	checkout  *checkout.Service
	closeFn   func()
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})
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
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	a, err := bootstrap(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap", err)
		os.Exit(1)
	}
	defer a.closeFn()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			meta := pkgerrors.MetadataFor(typed.Code())
			fmt.Fprintf(os.Stderr, "error: %s (%s)\n", typed.Message(), meta.PublicMessage)
			if details := typed.Details(); details != nil {
				fmt.Fprintf(os.Stderr, "  %v\n", details)
			}
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func bootstrap(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*app, error) {
	client, err := rest.NewClient(cfg.API, logg)
	if err != nil {
		return nil, err
	}
	directory, err := catalog.NewDirectory(client, logg)
	if err != nil {
		return nil, err
	}

	closeFn := func() {}
	var storage cart.Storage
	switch cfg.Cart.Backend {
	case config.CartBackendRedis:
		redisClient, err := cart.DialRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		closeFn = func() { redisClient.Close() }
		storage, err = cart.NewRedisStorage(redisClient, cfg.Cart.Key)
		if err != nil {
			closeFn()
			return nil, err
		}
	default:
		storage, err = cart.NewFileStorage(cfg.Cart.Path)
		if err != nil {
			return nil, err
		}
	}

	cartStore, err := cart.NewStore(storage, logg)
	if err != nil {
		closeFn()
		return nil, err
	}
	if err := cartStore.Load(ctx); err != nil {
		closeFn()
		return nil, err
	}

	checkoutSvc, err := checkout.NewService(client, cartStore, logg)
	if err != nil {
		closeFn()
		return nil, err
	}

	return &app{
		cfg:       cfg,
		logg:      logg,
		directory: directory,
		cartStore: cartStore,
		checkout:  checkoutSvc,
		closeFn:   closeFn,
	}, nil
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "products":
		return a.listProducts(ctx, args)
	case "product":
		return a.showProduct(ctx, args)
	case "add":
		return a.addToCart(ctx, args)
	case "cart":
		return a.showCart()
	case "qty":
		return a.updateQuantity(ctx, args)
	case "remove":
		return a.removeLine(ctx, args)
	case "clear":
		return a.cartStore.Clear(ctx)
	case "checkout":
		return a.placeOrder(ctx, args)
	case "theme":
		return a.theme(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) listProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	category := fs.String("category", "", "filter by category")
	fs.Parse(args)

	var products []catalog.Product
	var err error
	if *category != "" {
		parsed, parseErr := enums.ParseCategory(strings.ToLower(*category))
		if parseErr != nil {
			return parseErr
		}
		products, err = a.directory.ByCategory(ctx, parsed)
	} else {
		products, err = a.directory.ListAll(ctx)
	}
	if err != nil {
		return err
	}

	for _, p := range products {
		price := "-"
		if v, ok := selection.PickDefault(p.Variants); ok {
			price = "₹" + v.Price.String()
		} else if p.PriceRange != nil {
			price = *p.PriceRange
		}
		fmt.Printf("%-8s %-30s %-10s from %s\n", p.ID, p.Name, p.Category, price)
	}
	return nil
}

func (a *app) showProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: product <slug>")
	}
	p, err := a.directory.BySlug(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n%s\n", p.Name, p.Category, p.Description)
	if len(p.Ingredients) > 0 {
		fmt.Printf("ingredients: %s\n", strings.Join(p.Ingredients, ", "))
	}
	sel := selection.NewSelector(*p)
	current := sel.Current()
	for _, v := range sel.Variants() {
		marker := " "
		if v.Label == current.Label {
			marker = "*"
		}
		stock := fmt.Sprintf("%d in stock", v.Stock)
		if !v.InStock() {
			stock = "out of stock"
		}
		fmt.Printf("  %s %-12s ₹%-8s %s\n", marker, v.Label, v.Price.String(), stock)
	}
	return nil
}

func (a *app) addToCart(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: add <slug> <label> <qty>")
	}
	qty, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("quantity must be a number")
	}

	p, err := a.directory.BySlug(ctx, args[0])
	if err != nil {
		return err
	}

	sel := selection.NewSelector(*p)
	variants := sel.Variants()
	index := -1
	for i, v := range variants {
		if v.Label == args[1] {
			index = i
			break
		}
	}
	if index < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no variant %q on %s", args[1], p.Name))
	}
	if !sel.Select(index) {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("variant %q is out of stock", args[1]))
	}

	if err := a.cartStore.Add(ctx, *p, sel.Current(), qty); err != nil {
		return err
	}
	fmt.Printf("added %d × %s (%s)\n", qty, p.Name, sel.Current().Label)
	return nil
}

func (a *app) showCart() error {
	items := a.cartStore.Items()
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return nil
	}
	for _, item := range items {
		fmt.Printf("%-8s %-25s %-10s ×%-3d ₹%s\n",
			item.Product.ID, item.Product.Name, item.Variant.Label, item.Quantity, item.LineTotal().String())
	}
	fmt.Printf("total: ₹%s (%d items)\n", a.cartStore.Total().String(), a.cartStore.ItemCount())
	return nil
}

func (a *app) updateQuantity(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: qty <product-id> <label> <n>")
	}
	qty, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("quantity must be a number")
	}
	return a.cartStore.UpdateQuantity(ctx, args[0], args[1], qty)
}

func (a *app) removeLine(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: remove <product-id> <label>")
	}
	return a.cartStore.Remove(ctx, args[0], args[1])
}

func (a *app) placeOrder(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	info := checkout.CustomerInfo{}
	fs.StringVar(&info.FirstName, "first", "", "first name")
	fs.StringVar(&info.LastName, "last", "", "last name")
	fs.StringVar(&info.Email, "email", "", "email (optional)")
	fs.StringVar(&info.Phone, "phone", "", "phone number")
	fs.StringVar(&info.Address, "address", "", "street address")
	fs.StringVar(&info.City, "city", "", "city")
	fs.StringVar(&info.State, "state", "", "state")
	fs.StringVar(&info.Pincode, "pincode", "", "pincode")
	fs.StringVar(&info.PaymentMethod, "payment", "", "payment method (default COD)")
	fs.Parse(args)

	orderID, err := a.checkout.Submit(ctx, info)
	if err != nil {
		return err
	}
	fmt.Printf("order %d placed, we will contact you to confirm delivery\n", orderID)
	return nil
}

func (a *app) theme(args []string) error {
	store, err := prefs.NewStore(a.cfg.Prefs.Path)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Println(store.Theme())
		return nil
	}
	return store.SetTheme(args[0])
}
