// Command storefront is a terminal storefront built on the state stores. It
// drives the same guest-local versus authenticated-remote behavior the web
// client uses, against a running API.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harikrishnagadicharla/unicart/pkg/kvstore"
	"github.com/harikrishnagadicharla/unicart/pkg/logger"
	"github.com/harikrishnagadicharla/unicart/storefront/client"
	"github.com/harikrishnagadicharla/unicart/storefront/store"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "storefront",
		Usage: "shop from the terminal: browse, manage the cart and wishlist, sign in",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "storefront API base URL",
				Value:   "http://localhost:8080",
				EnvVars: []string{"UNICART_API_URL"},
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "directory for the persisted state snapshot",
				Value:   defaultDataDir(),
				EnvVars: []string{"UNICART_DATA_DIR"},
			},
		},
		Commands: []*cli.Command{
			loginCommand(),
			registerCommand(),
			logoutCommand(),
			whoamiCommand(),
			productsCommand(),
			cartCommand(),
			wishlistCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".unicart"
	}
	return filepath.Join(home, ".unicart")
}

// session bundles the constructed stores for one command invocation.
type session struct {
	api      *client.Client
	auth     *store.AuthStore
	cart     *store.CartStore
	wishlist *store.WishlistStore
}

func newSession(ctx context.Context, c *cli.Context) (*session, error) {
	path := filepath.Join(c.String("data-dir"), "storefront.json")
	kv, err := kvstore.NewFile(path)
	if err != nil {
		// a corrupt snapshot file is discarded, matching the stores'
		// handling of corrupt entries
		_ = os.Remove(path)
		if kv, err = kvstore.NewFile(path); err != nil {
			return nil, fmt.Errorf("open state snapshot: %w", err)
		}
	}

	api, err := client.New(c.String("base-url"))
	if err != nil {
		return nil, err
	}

	logg := logger.New(logger.Options{ServiceName: "storefront", Level: zerolog.WarnLevel})

	auth := store.NewAuthStore(api, kv, logg)
	auth.CheckAuth(ctx)

	cart := store.NewCartStore(ctx, store.CartStoreParams{
		API:     api,
		KV:      kv,
		Tokens:  auth,
		Pricing: store.DefaultPricing(),
		Logger:  logg,
	})
	if auth.IsAuthenticated() {
		cart.Fetch(ctx)
	}

	return &session{
		api:      api,
		auth:     auth,
		cart:     cart,
		wishlist: store.NewWishlistStore(ctx, kv, logg),
	}, nil
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in and persist the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(c *cli.Context) error {
			ctx := c.Context
			s, err := newSession(ctx, c)
			if err != nil {
				return err
			}
			result := s.auth.Login(ctx, c.String("email"), c.String("password"))
			if !result.Success {
				return fmt.Errorf("login failed (%s): %s", result.Code, result.Message)
			}
			fmt.Printf("signed in as %s\n", result.User.Email)
			return nil
		},
	}
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create an account and sign in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "first-name", Value: "Guest"},
			&cli.StringFlag{Name: "last-name", Value: "Shopper"},
		},
		Action: func(c *cli.Context) error {
			ctx := c.Context
			s, err := newSession(ctx, c)
			if err != nil {
				return err
			}
			result := s.auth.Register(ctx, client.RegisterRequest{
				Email:     c.String("email"),
				Password:  c.String("password"),
				FirstName: c.String("first-name"),
				LastName:  c.String("last-name"),
			})
			if !result.Success {
				return fmt.Errorf("registration failed (%s): %s", result.Code, result.Message)
			}
			fmt.Printf("registered and signed in as %s\n", result.User.Email)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "drop the session",
		Action: func(c *cli.Context) error {
			ctx := c.Context
			s, err := newSession(ctx, c)
			if err != nil {
				return err
			}
			s.auth.Logout(ctx)
			fmt.Println("signed out")
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the signed-in user",
		Action: func(c *cli.Context) error {
			s, err := newSession(c.Context, c)
			if err != nil {
				return err
			}
			user := s.auth.CurrentUser()
			if user == nil {
				fmt.Println("guest (not signed in)")
				return nil
			}
			fmt.Printf("%s %s <%s> role=%s\n", user.FirstName, user.LastName, user.Email, user.Role)
			return nil
		},
	}
}

func productsCommand() *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "browse the catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search"},
			&cli.IntFlag{Name: "limit", Value: 24},
			&cli.IntFlag{Name: "offset"},
		},
		Action: func(c *cli.Context) error {
			s, err := newSession(c.Context, c)
			if err != nil {
				return err
			}
			page, err := s.api.ListProducts(c.Context, client.ProductQuery{
				Search: c.String("search"),
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return err
			}
			for _, item := range page.Items {
				fmt.Printf("%s  %-30s  %s\n", item.ID, item.Name, formatCents(item.PriceCents))
			}
			fmt.Printf("%d of %d products\n", len(page.Items), page.Total)
			return nil
		},
	}
}

func cartCommand() *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "manage the cart",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "show cart lines and totals",
				Action: func(c *cli.Context) error {
					s, err := newSession(c.Context, c)
					if err != nil {
						return err
					}
					printCart(s.cart)
					return nil
				},
			},
			{
				Name:  "add",
				Usage: "add a product to the cart",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "product", Required: true, Usage: "product id"},
					&cli.IntFlag{Name: "quantity", Value: 1},
				},
				Action: func(c *cli.Context) error {
					ctx := c.Context
					s, err := newSession(ctx, c)
					if err != nil {
						return err
					}
					product, err := s.api.GetProduct(ctx, c.String("product"))
					if err != nil {
						return err
					}
					s.cart.AddItem(ctx, product.ProductSnapshot, c.Int("quantity"), nil)
					printCart(s.cart)
					return nil
				},
			},
			{
				Name:  "update",
				Usage: "change a line's quantity",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "item", Required: true, Usage: "cart line id"},
					&cli.IntFlag{Name: "quantity", Required: true},
				},
				Action: func(c *cli.Context) error {
					ctx := c.Context
					s, err := newSession(ctx, c)
					if err != nil {
						return err
					}
					s.cart.UpdateQuantity(ctx, c.String("item"), c.Int("quantity"))
					printCart(s.cart)
					return nil
				},
			},
			{
				Name:  "remove",
				Usage: "remove a line",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "item", Required: true, Usage: "cart line id"},
				},
				Action: func(c *cli.Context) error {
					ctx := c.Context
					s, err := newSession(ctx, c)
					if err != nil {
						return err
					}
					s.cart.RemoveItem(ctx, c.String("item"))
					printCart(s.cart)
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "empty the cart",
				Action: func(c *cli.Context) error {
					ctx := c.Context
					s, err := newSession(ctx, c)
					if err != nil {
						return err
					}
					// Signed-in carts are wiped with the bulk endpoint;
					// one request instead of a delete per line.
					if token := s.auth.Token(); token != "" {
						if err := s.api.ClearCart(ctx, token); err != nil {
							return err
						}
						s.cart.Fetch(ctx)
					} else {
						s.cart.ClearCart(ctx)
					}
					fmt.Println("cart cleared")
					return nil
				},
			},
		},
	}
}

func wishlistCommand() *cli.Command {
	return &cli.Command{
		Name:  "wishlist",
		Usage: "manage saved products",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "show saved products",
				Action: func(c *cli.Context) error {
					s, err := newSession(c.Context, c)
					if err != nil {
						return err
					}
					for _, item := range s.wishlist.Items() {
						fmt.Printf("%s  %-30s  %s\n", item.ProductID, item.Product.Name, formatCents(item.Product.PriceCents))
					}
					fmt.Printf("%d saved\n", s.wishlist.Count())
					return nil
				},
			},
			{
				Name:  "add",
				Usage: "save a product",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "product", Required: true, Usage: "product id"},
				},
				Action: func(c *cli.Context) error {
					ctx := c.Context
					s, err := newSession(ctx, c)
					if err != nil {
						return err
					}
					product, err := s.api.GetProduct(ctx, c.String("product"))
					if err != nil {
						return err
					}
					if !s.wishlist.AddItem(ctx, product.ProductSnapshot) {
						return fmt.Errorf("product already saved")
					}
					fmt.Printf("saved %s\n", product.Name)
					return nil
				},
			},
			{
				Name:  "remove",
				Usage: "unsave a product",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "product", Required: true, Usage: "product id"},
				},
				Action: func(c *cli.Context) error {
					s, err := newSession(c.Context, c)
					if err != nil {
						return err
					}
					s.wishlist.RemoveItem(c.Context, c.String("product"))
					fmt.Println("removed")
					return nil
				},
			},
		},
	}
}

func printCart(cart *store.CartStore) {
	for _, item := range cart.Items() {
		fmt.Printf("%s  %-30s  x%d  %s\n", item.ID, item.Product.Name, item.Quantity, formatCents(item.PriceCents))
	}
	fmt.Printf("items: %d  subtotal: %s  shipping: %s  tax: %s  total: %s\n",
		cart.ItemCount(),
		cart.Subtotal().StringFixed(2),
		cart.Shipping().StringFixed(2),
		cart.Tax().StringFixed(2),
		cart.Total().StringFixed(2),
	)
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
