// Package cli provides the Cobra-based CLI for shopledger.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shopledger/domain"
	"shopledger/persist"
	"shopledger/shop"
	"shopledger/util"
)

var (
	rootCmd = &cobra.Command{
		Use:   "shopledger",
		Short: "An inventory and ordering ledger",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// IMPORTANT: allow tests to inject the shop
			if shopHandle != nil {
				return nil
			}

			if cfg := viper.GetString("config"); cfg != "" {
				viper.SetConfigFile(cfg)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}

			lvlStr := strings.ToLower(viper.GetString("log-level"))
			lvl := slog.LevelInfo
			switch lvlStr {
			case "debug":
				lvl = slog.LevelDebug
			case "warn", "warning":
				lvl = slog.LevelWarn
			case "error":
				lvl = slog.LevelError
			}
			slog.SetDefault(slog.New(
				slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
			))

			gw, err := persist.NewGateway(
				viper.GetString("store"),
				viper.GetString("store-file"),
			)
			if err != nil {
				return err
			}
			shopHandle = shop.New(context.Background(), gw, slog.Default())
			return nil
		},
	}

	shopHandle *shop.Shop
)

// parseLineItems turns repeated id=qty flags into a line item map.
func parseLineItems(specs []string) (map[string]int, error) {
	items := make(map[string]int, len(specs))
	for _, spec := range specs {
		id, qtyStr, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid item %q, want id=qty", spec)
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in %q: %w", spec, err)
		}
		items[id] += qty
	}
	return items, nil
}

func printJSON(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func init() {
	// shell
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := bufio.NewReader(os.Stdin)
			for {
				fmt.Print("shopledger> ")
				line, err := r.ReadString('\n')
				if err != nil {
					return nil
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}
				rootCmd.SetArgs(strings.Fields(line))
				if err := rootCmd.Execute(); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
				rootCmd.SetArgs(nil)
			}
		},
	}
	rootCmd.AddCommand(shellCmd)

	rootCmd.PersistentFlags().String("store", "memory", "persistence backend: memory|file")
	rootCmd.PersistentFlags().String("store-file", "data/shop.json", "state file path")
	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")

	viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("store-file", rootCmd.PersistentFlags().Lookup("store-file"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix("SHOPLEDGER")
	viper.AutomaticEnv()

	itemCmd := &cobra.Command{
		Use:   "item",
		Short: "Catalog item commands",
	}
	rootCmd.AddCommand(itemCmd)

	// item save
	var id, title, owner, coverURL, coverFile, priceStr string
	var copies int
	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Create or overwrite a catalog item",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return errors.New("--id required")
			}
			price, err := decimal.NewFromString(priceStr)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", priceStr, err)
			}
			cover := domain.NoCover()
			if coverFile != "" {
				data, err := os.ReadFile(coverFile)
				if err != nil {
					return err
				}
				cover = domain.InlineCover(data, mime.TypeByExtension(filepath.Ext(coverFile)))
			} else if coverURL != "" {
				cover = domain.URLCover(coverURL)
			}

			start := time.Now()
			item, err := shopHandle.UpsertItem(context.Background(), id, title, owner, copies, price, cover)
			if err != nil {
				slog.Error("item save failed", "item_id", id, "error", err)
				return err
			}
			slog.Info("item saved", "item_id", id, "duration_ms", time.Since(start).Milliseconds())
			printJSON(item)
			return nil
		},
	}
	saveCmd.Flags().StringVar(&id, "id", "", "item id")
	saveCmd.Flags().StringVar(&title, "title", "", "title")
	saveCmd.Flags().StringVar(&owner, "owner", "", "owner or author")
	saveCmd.Flags().IntVar(&copies, "copies", 0, "total copies")
	saveCmd.Flags().StringVar(&priceStr, "price", "0", "unit price")
	saveCmd.Flags().StringVar(&coverURL, "cover-url", "", "cover URL")
	saveCmd.Flags().StringVar(&coverFile, "cover-file", "", "cover image file")
	itemCmd.AddCommand(saveCmd)

	// item price
	priceCmd := &cobra.Command{
		Use:   "price <id> <price>",
		Short: "Set an item's unit price",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", args[1], err)
			}
			if err := shopHandle.SetPrice(context.Background(), args[0], price); err != nil {
				return err
			}
			fmt.Println("price updated")
			return nil
		},
	}
	itemCmd.AddCommand(priceCmd)

	// item stock
	stockCmd := &cobra.Command{
		Use:   "stock <id> <qty>",
		Short: "Add stock: raises total and available copies",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[1], err)
			}
			if err := shopHandle.AddStock(context.Background(), args[0], qty); err != nil {
				return err
			}
			fmt.Println("stock added")
			return nil
		},
	}
	itemCmd.AddCommand(stockCmd)

	// item get
	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get item by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := shopHandle.GetItem(context.Background(), args[0])
			if err != nil {
				if domain.IsNotFoundError(err) {
					fmt.Fprintln(os.Stderr, err)
					return nil
				}
				return err
			}
			printJSON(item)
			return nil
		},
	}
	itemCmd.AddCommand(getCmd)

	// item list
	var listOutput string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog items",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := shopHandle.ListItems(context.Background())
			if err != nil {
				return err
			}
			if listOutput == "json" {
				printJSON(out)
				return nil
			}
			for _, it := range out {
				fmt.Printf("%s | %s by %s | %s | %d/%d\n",
					it.ID, it.Title, it.Owner, it.UnitPrice.StringFixed(2),
					it.AvailableQuantity, it.TotalQuantity)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&listOutput, "output", "", "output format")
	itemCmd.AddCommand(listCmd)

	// item search
	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search items by title or owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := shopHandle.SearchItems(context.Background(), args[0])
			if err != nil {
				return err
			}
			for _, it := range out {
				fmt.Printf("%s | %s by %s | %s | %d/%d\n",
					it.ID, it.Title, it.Owner, it.UnitPrice.StringFixed(2),
					it.AvailableQuantity, it.TotalQuantity)
			}
			return nil
		},
	}
	itemCmd.AddCommand(searchCmd)

	// item remove
	var force bool
	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an item from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("Remove %s? (y/N): ", args[0])
				var resp string
				if _, err := fmt.Scanln(&resp); err != nil || (resp != "y" && resp != "Y") {
					fmt.Println("aborted")
					return nil
				}
			}
			if err := shopHandle.RemoveItem(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("removed")
			return nil
		},
	}
	removeCmd.Flags().BoolVar(&force, "force", false, "skip confirmation")
	itemCmd.AddCommand(removeCmd)

	orderCmd := &cobra.Command{
		Use:   "order",
		Short: "Order ledger commands",
	}
	rootCmd.AddCommand(orderCmd)

	// order create
	var customer, userID string
	var itemSpecs []string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an order, reserving stock",
		RunE: func(cmd *cobra.Command, args []string) error {
			if customer == "" {
				return errors.New("--customer required")
			}
			items, err := parseLineItems(itemSpecs)
			if err != nil {
				return err
			}
			uid := userID
			if uid == "" {
				uid = util.NewUserID()
			}

			start := time.Now()
			order, err := shopHandle.CreateOrder(context.Background(), customer, uid, items)
			if err != nil {
				slog.Error("order create failed", "customer", customer, "error", err)
				return err
			}
			slog.Info("order created", "order_id", order.ID, "total", order.Total, "duration_ms", time.Since(start).Milliseconds())
			printJSON(order)
			return nil
		},
	}
	createCmd.Flags().StringVar(&customer, "customer", "", "customer name")
	createCmd.Flags().StringVar(&userID, "user", "", "user id (generated when empty)")
	createCmd.Flags().StringArrayVar(&itemSpecs, "item", nil, "line item as id=qty (repeatable)")
	orderCmd.AddCommand(createCmd)

	// order pay / deliver / cancel
	payCmd := &cobra.Command{
		Use:   "pay <id>",
		Short: "Mark an order paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := shopHandle.MarkPaid(context.Background(), args[0]); err != nil {
				return err
			}
			slog.Info("order paid", "order_id", args[0])
			fmt.Println("paid")
			return nil
		},
	}
	orderCmd.AddCommand(payCmd)

	deliverCmd := &cobra.Command{
		Use:   "deliver <id>",
		Short: "Mark a paid order delivered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := shopHandle.MarkDelivered(context.Background(), args[0]); err != nil {
				return err
			}
			slog.Info("order delivered", "order_id", args[0])
			fmt.Println("delivered")
			return nil
		},
	}
	orderCmd.AddCommand(deliverCmd)

	cancelCmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an order and restock its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := shopHandle.CancelOrder(context.Background(), args[0]); err != nil {
				return err
			}
			slog.Info("order cancelled", "order_id", args[0])
			fmt.Println("cancelled and restocked")
			return nil
		},
	}
	orderCmd.AddCommand(cancelCmd)

	// order note
	var noteText string
	noteCmd := &cobra.Command{
		Use:   "note <id>",
		Short: "Set the admin note on an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := shopHandle.SetOrderNote(context.Background(), args[0], noteText); err != nil {
				return err
			}
			fmt.Println("note set")
			return nil
		},
	}
	noteCmd.Flags().StringVar(&noteText, "text", "", "note text")
	orderCmd.AddCommand(noteCmd)

	// order get
	orderGetCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get order by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := shopHandle.FindOrder(context.Background(), args[0])
			if err != nil {
				if domain.IsNotFoundError(err) {
					fmt.Fprintln(os.Stderr, err)
					return nil
				}
				return err
			}
			printJSON(order)
			return nil
		},
	}
	orderCmd.AddCommand(orderGetCmd)

	// order list
	var listCustomer, orderListOutput string
	orderListCmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var out []domain.Order
			var err error
			if listCustomer != "" {
				out, err = shopHandle.ListOrdersForCustomer(ctx, listCustomer)
			} else {
				out, err = shopHandle.ListOrders(ctx)
			}
			if err != nil {
				return err
			}
			if orderListOutput == "json" {
				printJSON(out)
				return nil
			}
			for _, o := range out {
				fmt.Printf("%s | %s | %s | %s | %s\n",
					o.ID, o.Customer, o.Status, o.Total.StringFixed(2),
					o.Time.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
	orderListCmd.Flags().StringVar(&listCustomer, "customer", "", "filter by customer")
	orderListCmd.Flags().StringVar(&orderListOutput, "output", "", "output format")
	orderCmd.AddCommand(orderListCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
