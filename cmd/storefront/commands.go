package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"storefront/server"
)

func catalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "catalog", Short: "Browse the product catalog"}

	var category, format, minPrice, maxPrice, query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]any{"category": category, "format": format, "query": query}
			if minPrice != "" {
				fields["min_price"] = minPrice
			}
			if maxPrice != "" {
				fields["max_price"] = maxPrice
			}
			return a.do(cmd, server.CmdCatalogList, fields)
		},
	}
	list.Flags().StringVar(&category, "category", "", "books, planners, art-prints, templates or stationery")
	list.Flags().StringVar(&format, "format", "", "digital, printed or physical")
	list.Flags().StringVar(&minPrice, "min", "", "Minimum price (inclusive)")
	list.Flags().StringVar(&maxPrice, "max", "", "Maximum price (inclusive)")
	list.Flags().StringVarP(&query, "query", "q", "", "Search title and brand")

	show := &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.do(cmd, server.CmdCatalogShow, map[string]any{"product_id": args[0]})
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func cartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "cart", Short: "Inspect and change the cart"}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the cart and its quote",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.do(cmd, server.CmdCartShow, nil)
			},
		},
		&cobra.Command{
			Use:   "add <product-id> [quantity]",
			Short: "Add a product (quantity defaults to 1)",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				qty := 1
				if len(args) == 2 {
					n, err := strconv.Atoi(args[1])
					if err != nil {
						return err
					}
					qty = n
				}
				return a.do(cmd, server.CmdCartAdd, map[string]any{"product_id": args[0], "quantity": qty})
			},
		},
		&cobra.Command{
			Use:   "set <product-id> <quantity>",
			Short: "Set a product's quantity; zero or less removes it",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				qty, err := strconv.Atoi(args[1])
				if err != nil {
					return err
				}
				return a.do(cmd, server.CmdCartSet, map[string]any{"product_id": args[0], "quantity": qty})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.do(cmd, server.CmdCartClear, nil)
			},
		},
	)
	return cmd
}

func couponCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "coupon", Short: "Apply or reset the coupon"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "apply <code>",
			Short: "Apply a coupon code",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.do(cmd, server.CmdCouponApply, map[string]any{"code": args[0]})
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Remove the applied coupon",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.do(cmd, server.CmdCouponReset, nil)
			},
		},
	)
	return cmd
}

func loginCmd(a *app) *cobra.Command {
	var name, email, phone string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a mock session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.do(cmd, server.CmdLogin, map[string]any{"name": name, "email": email, "phone": phone})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.do(cmd, server.CmdLogout, nil)
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.do(cmd, server.CmdWhoami, nil)
		},
	}
}

func addressCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "address", Short: "Manage the address book"}

	var label, line1, line2, city, postalCode, country string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an address to the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.do(cmd, server.CmdAddressAdd, map[string]any{
				"label":       label,
				"line1":       line1,
				"line2":       line2,
				"city":        city,
				"postal_code": postalCode,
				"country":     country,
			})
		},
	}
	add.Flags().StringVar(&label, "label", "", "Label, e.g. home")
	add.Flags().StringVar(&line1, "line1", "", "Street address")
	add.Flags().StringVar(&line2, "line2", "", "Apartment, suite")
	add.Flags().StringVar(&city, "city", "", "City")
	add.Flags().StringVar(&postalCode, "postal-code", "", "Postal code")
	add.Flags().StringVar(&country, "country", "", "Country")

	cmd.AddCommand(add)
	return cmd
}

func paymentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "payment", Short: "Manage saved payment methods"}

	var brand, last4, expiry string
	add := &cobra.Command{
		Use:   "add",
		Short: "Save a card stub for the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.do(cmd, server.CmdPaymentAdd, map[string]any{"brand": brand, "last4": last4, "expiry": expiry})
		},
	}
	add.Flags().StringVar(&brand, "brand", "", "Card brand")
	add.Flags().StringVar(&last4, "last4", "", "Last four digits")
	add.Flags().StringVar(&expiry, "expiry", "", "Expiry, MM/YY")

	cmd.AddCommand(add)
	return cmd
}

func wishlistCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "wishlist", Short: "Manage saved products"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "List saved products",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.do(cmd, server.CmdWishlistShow, nil)
			},
		},
		&cobra.Command{
			Use:   "toggle <product-id>",
			Short: "Save or unsave a product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.do(cmd, server.CmdWishlistToggle, map[string]any{"product_id": args[0]})
			},
		},
		&cobra.Command{
			Use:   "move <product-id>",
			Short: "Move a saved product into the cart",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.do(cmd, server.CmdWishlistMove, map[string]any{"product_id": args[0]})
			},
		},
	)
	return cmd
}

func checkoutCmd(a *app) *cobra.Command {
	var shipping string
	var skipPayment bool
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Pay for the cart and place the order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := server.CmdCheckout
			if skipPayment {
				command = server.CmdOrderPlace
			}
			return a.do(cmd, command, map[string]any{"shipping": shipping})
		},
	}
	cmd.Flags().StringVar(&shipping, "shipping", "standard", "standard or express")
	cmd.Flags().BoolVar(&skipPayment, "skip-payment", false, "Place the order without the simulated payment")
	return cmd
}

func ordersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "orders [order-id]",
		Short: "List orders, most recent first, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return a.do(cmd, server.CmdOrdersShow, map[string]any{"order_id": args[0]})
			}
			return a.do(cmd, server.CmdOrdersList, nil)
		},
	}
}
