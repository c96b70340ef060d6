package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/nikolayk812/storefront-state/internal/app"
	"github.com/nikolayk812/storefront-state/internal/catalog"
	"github.com/nikolayk812/storefront-state/internal/config"
	"github.com/nikolayk812/storefront-state/internal/port"
	"github.com/spf13/cobra"
)

var dump = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func demoCmd() *cobra.Command {
	var (
		username string
		debug    bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through the shop, cart and settings views in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("debug") {
				cfg.Display.DebugMode = debug
			}

			root, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return fmt.Errorf("app.New: %w", err)
			}
			defer root.Close()

			v := &views{
				out:     cmd.OutOrStdout(),
				cart:    root.Cart,
				session: root.Session,
				catalog: root.Catalog,
				display: root.Display,
			}
			return v.run(username)
		},
	}

	cmd.Flags().StringVar(&username, "username", "JIMMY HUANG", "username to sign in with")
	cmd.Flags().BoolVar(&debug, "debug", true, "print the debug card, overrides DEBUG_MODE")

	return cmd
}

// views is a text presentation layer. It only reads from and calls into the stores.
type views struct {
	out     io.Writer
	cart    port.CartStore
	session port.SessionStore
	catalog *catalog.Catalog
	display config.Display
}

func (v *views) run(username string) error {
	v.shop()

	v.session.Login(username)
	v.welcome()

	products := v.catalog.Products()
	if len(products) < 2 {
		return fmt.Errorf("catalog has %d products, the demo needs at least 2", len(products))
	}
	first, second := products[0], products[1]

	v.cart.AddItem(first.CartItem())
	v.cart.AddItem(first.CartItem())
	v.cart.AddItem(second.CartItem())
	v.cartView()

	v.cart.RemoveItem(first.CartItem())
	v.cartView()

	v.cart.ClearCart()
	v.cartView()

	v.settings()
	v.session.Logout()
	v.settings()

	return nil
}

func (v *views) shop() {
	v.title("Shop")
	for _, p := range v.catalog.Products() {
		fmt.Fprintf(v.out, "  %s %-12s %s\n", p.Emoji, p.Name, p.Price.StringFixed(2))
	}
	v.badge()

	if v.display.DebugMode {
		v.debugCard()
	}
	v.welcome()
}

func (v *views) welcome() {
	fmt.Fprintf(v.out, "Welcome back, %s\n", v.session.Username())
}

func (v *views) badge() {
	if n := v.cart.ItemCount(); n > 0 {
		fmt.Fprintf(v.out, "[cart: %d]\n", n)
	}
}

func (v *views) cartView() {
	v.title("Cart")

	snap := v.cart.Snapshot()
	if snap.IsEmpty() {
		fmt.Fprintln(v.out, "Your cart is empty")
		fmt.Fprintln(v.out, "Add some items to get started!")
		return
	}

	for _, item := range snap.Items {
		fmt.Fprintf(v.out, "  %-12s %s x %d  %s\n", item.Name, item.Price.StringFixed(2), item.Quantity, item.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(v.out, "Total: %s\n", snap.Total())
}

func (v *views) settings() {
	v.title("Settings")

	status := "Guest"
	if v.session.IsLoggedIn() {
		status = "Signed In"
	}
	fmt.Fprintf(v.out, "  %s (%s)\n", v.session.Username(), status)
}

func (v *views) debugCard() {
	v.title("Debug Mode")

	loggedIn := "No"
	if v.session.IsLoggedIn() {
		loggedIn = "Yes"
	}

	fmt.Fprintf(v.out, "  Accent Color: %s\n", v.display.AccentColor)
	fmt.Fprintf(v.out, "  Corner Radius: %.0f\n", v.display.CardCornerRadius)
	fmt.Fprintf(v.out, "  Cart Items: %d\n", v.cart.ItemCount())
	fmt.Fprintf(v.out, "  User: %s\n", v.session.Username())
	fmt.Fprintf(v.out, "  Logged In: %s\n", loggedIn)
	fmt.Fprint(v.out, dump.Sdump(v.display, v.session.Snapshot()))
}

func (v *views) title(s string) {
	fmt.Fprintf(v.out, "\n== %s %s\n", s, strings.Repeat("=", max(0, 30-len(s))))
}
