package cmd

import (
	"os"
	"strings"

	"github.com/maelkum/storefront/client"
	"github.com/maelkum/storefront/db"
	"github.com/maelkum/storefront/pkg/validation"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// catalogueCmd groups the product catalogue subcommands.
func catalogueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogue",
		Short: "Browse the product catalogue",
	}

	cmd.AddCommand(
		catalogueRefreshCmd(),
		catalogueListCmd(),
		catalogueSearchCmd(),
		catalogueInfoCmd(),
	)

	return cmd
}

// catalogueRefreshCmd re-downloads every catalogue page into the local cache.
func catalogueRefreshCmd() *cobra.Command {
	var numWorkers int

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Update the local catalogue cache from the catalog service",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateWorkerCount(numWorkers); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			svc, err := buildServices()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			bar := progressbar.NewOptions(100,
				progressbar.OptionSetDescription("Refreshing catalogue..."),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
			progressCb := func(progress float64) {
				_ = bar.Set(int(progress * 100))
			}

			if err := client.RefreshCatalogue(cmd.Context(), svc.catalog, svc.products, numWorkers, progressCb); err != nil {
				log.Error().Err(err).Msg("Failed to refresh the catalogue cache")
				cmd.PrintErrln("Error: Failed to refresh the catalogue. Please check the logs for details.")
				return
			}
			_ = bar.Finish()
			cmd.Println("Catalogue updated.")
		},
	}

	cmd.Flags().IntVarP(&numWorkers, "workers", "t", 5, "Number of workers used to store fetched products")
	return cmd
}

func catalogueListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all products in the local catalogue cache",
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := buildServices()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			products, err := svc.products.List(cmd.Context())
			if err != nil {
				cmd.PrintErrln("Error: Unable to list products. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to fetch products from the catalogue cache.")
				return
			}
			renderProducts(cmd, products)
		},
	}
}

func catalogueSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [term]",
		Short: "Search the local catalogue cache by product name",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := buildServices()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			products, err := svc.products.SearchByName(cmd.Context(), args[0])
			if err != nil {
				cmd.PrintErrln("Error: Search failed. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to search the catalogue cache.")
				return
			}
			renderProducts(cmd, products)
		},
	}
}

func catalogueInfoCmd() *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show information about a specific product",
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := buildServices()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			product, err := svc.products.GetByCode(cmd.Context(), code)
			if err != nil {
				log.Error().Err(err).Msgf("Failed to fetch info for product %s", code)
				cmd.PrintErrln("Error:", err)
				return
			}
			if product == nil {
				cmd.Println("No product found with the specified code.")
				return
			}

			cmd.Println("Product Information:")
			cmd.Printf("Code: %s\n", product.Code)
			cmd.Printf("Name: %s\n", product.Name)
			cmd.Printf("Price: %s\n", client.FormatPrice(product.PriceCents))
			cmd.Printf("Description: %s\n", product.Description)
		},
	}

	cmd.Flags().StringVarP(&code, "code", "c", "", "Code of the product to show")
	if err := cmd.MarkFlagRequired("code"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'code' flag as required")
	}
	return cmd
}

func renderProducts(cmd *cobra.Command, products []db.Product) {
	if len(products) == 0 {
		cmd.Println("No products found. Use `storefront catalogue refresh` to update the cache.")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Code", "Name", "Price"})

	table.SetColMinWidth(1, 50)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for _, product := range products {
		cleanedName := strings.ReplaceAll(product.Name, "\n", " ")
		table.Append([]string{
			product.Code,
			cleanedName,
			client.FormatPrice(product.PriceCents),
		})
	}

	table.Render()
}
