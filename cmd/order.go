package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/maelkum/storefront/client"
	"github.com/maelkum/storefront/pkg/validation"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// orderCmd groups the order subcommands.
func orderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place orders and inspect order history",
	}

	cmd.AddCommand(
		orderPlaceCmd(),
		orderListCmd(),
		orderShowCmd(),
	)

	return cmd
}

// orderPlaceCmd builds an order from the current cart, places it, and
// clears the cart on success.
func orderPlaceCmd() *cobra.Command {
	var phone, line1, line2, city, state, zip, country string

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place an order with the contents of the cart",
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := buildServices()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			ctx := cmd.Context()

			for _, field := range []struct{ name, value string }{
				{"phone", phone},
				{"address line 1", line1},
				{"city", city},
				{"zip code", zip},
				{"country", country},
			} {
				if err := validation.ValidateNonEmptyString(field.name, field.value); err != nil {
					cmd.PrintErrln("Error:", err)
					return
				}
			}

			summary, err := svc.cart.Current(ctx)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if len(summary.Lines) == 0 {
				cmd.Println("The cart is empty; nothing to order.")
				return
			}

			profile, err := svc.users.Me(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Failed to fetch profile for checkout")
				cmd.PrintErrln("Error:", classifyError(err).Message)
				return
			}

			req := client.CreateOrderRequest{
				Customer: client.Customer{
					Name:  profile.FirstName + " " + profile.LastName,
					Email: profile.Email,
					Phone: phone,
				},
				DeliveryAddress: client.DeliveryAddress{
					AddressLine1: line1,
					AddressLine2: line2,
					City:         city,
					State:        state,
					ZipCode:      zip,
					Country:      country,
				},
			}
			for _, line := range summary.Lines {
				req.Items = append(req.Items, client.OrderItem{
					Code:     line.Code,
					Name:     line.Name,
					Price:    float64(line.PriceCents) / 100,
					Quantity: line.Quantity,
				})
			}

			order, err := svc.orders.Create(ctx, req)
			if err != nil {
				log.Error().Err(err).Msg("Failed to place order")
				cmd.PrintErrln("Error:", classifyError(err).Message)
				return
			}

			if _, err := svc.cart.Clear(ctx); err != nil {
				log.Warn().Err(err).Msg("Order placed but the cart could not be cleared")
			}
			cmd.Printf("Order placed. Number: %s, status: %s.\n", order.OrderNumber, order.Status)
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone number")
	cmd.Flags().StringVar(&line1, "address1", "", "Address line 1")
	cmd.Flags().StringVar(&line2, "address2", "", "Address line 2")
	cmd.Flags().StringVar(&city, "city", "", "City")
	cmd.Flags().StringVar(&state, "state", "", "State or province")
	cmd.Flags().StringVar(&zip, "zip", "", "Zip or postal code")
	cmd.Flags().StringVar(&country, "country", "", "Country")

	return cmd
}

func orderListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show your order history",
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := buildServices()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			orders, err := svc.orders.List(cmd.Context())
			if err != nil {
				log.Error().Err(err).Msg("Failed to list orders")
				cmd.PrintErrln("Error:", classifyError(err).Message)
				return
			}
			if len(orders) == 0 {
				cmd.Println("No orders yet.")
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Order Number", "Status"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			for _, order := range orders {
				table.Append([]string{order.OrderNumber, order.Status})
			}
			table.Render()
		},
	}
}

func orderShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [order-number]",
		Short: "Show the details of one order",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := buildServices()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			detail, err := svc.orders.Get(cmd.Context(), args[0])
			if err != nil {
				log.Error().Err(err).Msg("Failed to fetch order")
				cmd.PrintErrln("Error:", classifyError(err).Message)
				return
			}

			cmd.Printf("Order %s (%s)\n", detail.OrderNumber, detail.Status)
			cmd.Printf("Placed: %s\n", detail.CreatedAt.Format("2006-01-02 15:04"))
			cmd.Printf("Customer: %s <%s>\n", detail.Customer.Name, detail.Customer.Email)
			cmd.Printf("Ship to: %s, %s %s, %s\n",
				detail.DeliveryAddress.AddressLine1, detail.DeliveryAddress.City,
				detail.DeliveryAddress.ZipCode, detail.DeliveryAddress.Country)

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Code", "Name", "Price", "Quantity"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			for _, item := range detail.Items {
				table.Append([]string{
					item.Code,
					item.Name,
					fmt.Sprintf("%.2f", item.Price),
					strconv.Itoa(item.Quantity),
				})
			}
			table.Render()
			cmd.Printf("Total: %.2f\n", detail.TotalAmount)
		},
	}
}
