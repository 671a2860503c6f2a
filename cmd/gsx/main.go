// Command gsx is a small CLI over the GSX web services client:
// warranty, repair and parts lookups by serial number.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	gsxws "github.com/servicetools/go-gsxws"
	"github.com/servicetools/go-gsxws/internal/config"
	"github.com/servicetools/go-gsxws/pkg/locale"
	"github.com/servicetools/go-gsxws/pkg/lookup"
	"github.com/servicetools/go-gsxws/pkg/product"
	"github.com/servicetools/go-gsxws/pkg/repair"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "gsx",
		Short:         "Query GSX web services",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "gsx.yaml", "config file")

	cmd.AddCommand(
		newWarrantyCmd(&configPath),
		newRepairsCmd(&configPath),
		newPartsCmd(&configPath),
		newStatusCmd(&configPath),
	)
	return cmd
}

func connect(ctx context.Context, configPath string) (*gsxws.Conn, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return gsxws.Connect(ctx, &gsxws.Config{
		UserID:      cfg.Account.UserID,
		Password:    cfg.Account.Password,
		SoldTo:      cfg.Account.SoldTo,
		Environment: locale.Environment(cfg.Service.Environment),
		Region:      cfg.Service.Region,
		Language:    cfg.Service.Language,
		Timezone:    cfg.Service.Timezone,
		Locale:      cfg.Service.Locale,
		CachePath:   cfg.Cache.Path,
		NoCache:     cfg.Cache.Disabled,
	})
}

func newWarrantyCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "warranty <serial>",
		Short: "Show warranty status for a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connect(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			p, err := product.New(conn, args[0])
			if err != nil {
				return err
			}
			info, err := p.Warranty(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Product:  %s\n", info.GetString("configDescription"))
			fmt.Fprintf(out, "Warranty: %s\n", info.GetString("warrantyStatus"))
			if n := info.Get("estimatedPurchaseDate"); n != nil {
				if d, ok := n.Date(); ok {
					fmt.Fprintf(out, "Purchased: %s\n", d)
				}
			}
			return nil
		},
	}
}

func newRepairsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "repairs <serial>",
		Short: "List repairs filed for a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connect(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			l := lookup.New(conn)
			if err := l.Set("serialNumber", args[0]); err != nil {
				return err
			}
			repairs, err := l.Repairs(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range repairs {
				fmt.Fprintf(out, "%s\t%s\t%s\n",
					r.GetString("dispatchId"),
					r.GetString("repairStatus"),
					r.GetString("customerName"))
			}
			return nil
		},
	}
}

func newPartsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "parts <serial>",
		Short: "List service parts for a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connect(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			l := lookup.New(conn)
			if err := l.Set("serialNumber", args[0]); err != nil {
				return err
			}
			parts, err := l.Parts(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range parts {
				price := p.GetString("stockPrice")
				fmt.Fprintf(out, "%s\t%s\t%s\n",
					p.GetString("partNumber"),
					p.GetString("partDescription"),
					price)
			}
			return nil
		},
	}
}

func newStatusCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status <dispatch-id>",
		Short: "Show the status of a repair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connect(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			st, err := repair.New(conn, args[0]).Status(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", st.GetString("repairStatus"))
			return nil
		},
	}
}
