package cmd

import (
	"os"
	"strconv"

	"github.com/maelkum/storefront/cart"
	"github.com/maelkum/storefront/client"
	"github.com/maelkum/storefront/pkg/validation"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// cartCmd groups the shopping cart subcommands.
func cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}

	cmd.AddCommand(
		cartAddCmd(),
		cartRemoveCmd(),
		cartUpdateCmd(),
		cartShowCmd(),
		cartClearCmd(),
	)

	return cmd
}

func cartAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [code]",
		Short: "Add one unit of a product to the cart",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := buildServices()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			ctx := cmd.Context()

			product, err := svc.products.GetByCode(ctx, args[0])
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if product == nil {
				cmd.Println("No product found with the specified code. Use `storefront catalogue refresh` to update the cache.")
				return
			}

			summary, err := svc.cart.Add(ctx, *product)
			if err != nil {
				log.Error().Err(err).Msg("Failed to add product to cart")
				cmd.PrintErrln("Error:", err)
				return
			}
			cmd.Printf("Added %s to the cart. %d item(s), total %s.\n",
				product.Name, summary.ItemCount, client.FormatPrice(summary.TotalCents))
		},
	}
}

func cartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [code]",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := buildServices()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			summary, err := svc.cart.Remove(cmd.Context(), args[0])
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			cmd.Printf("Removed. %d item(s), total %s.\n",
				summary.ItemCount, client.FormatPrice(summary.TotalCents))
		},
	}
}

func cartUpdateCmd() *cobra.Command {
	var quantity int
	cmd := &cobra.Command{
		Use:   "update [code]",
		Short: "Set the quantity of a product in the cart",
		Long:  "Set the quantity of a product in the cart. A quantity of 0 removes the product.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := buildServices()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if quantity < 0 {
				cmd.PrintErrln("Error:", validation.ValidateQuantity(quantity))
				return
			}
			summary, err := svc.cart.UpdateQuantity(cmd.Context(), args[0], quantity)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			cmd.Printf("Updated. %d item(s), total %s.\n",
				summary.ItemCount, client.FormatPrice(summary.TotalCents))
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "New quantity for the product")
	if err := cmd.MarkFlagRequired("quantity"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'quantity' flag as required")
	}
	return cmd
}

func cartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart contents and totals",
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := buildServices()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			summary, err := svc.cart.Current(cmd.Context())
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			renderCart(cmd, summary)
		},
	}
}

func cartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove everything from the cart",
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := buildServices()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if _, err := svc.cart.Clear(cmd.Context()); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			cmd.Println("Cart cleared.")
		},
	}
}

func renderCart(cmd *cobra.Command, summary cart.Summary) {
	if len(summary.Lines) == 0 {
		cmd.Println("The cart is empty.")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Code", "Name", "Unit Price", "Quantity", "Line Total"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)

	for _, line := range summary.Lines {
		table.Append([]string{
			line.Code,
			line.Name,
			client.FormatPrice(line.PriceCents),
			strconv.Itoa(line.Quantity),
			client.FormatPrice(line.PriceCents * int64(line.Quantity)),
		})
	}
	table.Render()

	cmd.Printf("Items: %d\n", summary.ItemCount)
	cmd.Printf("Total: %s\n", client.FormatPrice(summary.TotalCents))
}
