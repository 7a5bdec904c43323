package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rogerio-castellano/product-store/internal/auth"
	"github.com/rogerio-castellano/product-store/internal/catalog"
	"github.com/rogerio-castellano/product-store/internal/config"
	"github.com/rogerio-castellano/product-store/internal/db"
	"github.com/rogerio-castellano/product-store/internal/models"
	"github.com/rogerio-castellano/product-store/internal/repo"
	"github.com/spf13/cobra"
)

// openService connects to the configured database. Tests replace it.
var openService = func(ctx context.Context, configFile string) (*catalog.Service, func(), error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	svc := catalog.NewService(repo.NewPostgresProductRepository(database), nil)
	return svc, func() { database.Close() }, nil
}

func newRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "productctl",
		Short:         "Manage the product store from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file")

	withService := func(run func(cmd *cobra.Command, svc *catalog.Service, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := openService(cmd.Context(), configFile)
			if err != nil {
				return err
			}
			defer closeFn()
			return run(cmd, svc, args)
		}
	}

	root.AddCommand(
		migrateCommand(&configFile),
		addCommand(withService),
		deleteCommand(withService),
		searchCommand(withService),
		listCommand(withService),
		hashPasswordCommand(),
	)
	return root
}

type serviceRunner func(run func(cmd *cobra.Command, svc *catalog.Service, args []string) error) func(*cobra.Command, []string) error

func migrateCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the products table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			applied, err := db.Migrate(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if applied {
				fmt.Fprintln(cmd.OutOrStdout(), "Migrated up")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No change in migration")
			}
			return nil
		},
	}
}

func addCommand(withService serviceRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME QUANTITY",
		Short: "Add a product",
		Args:  cobra.ExactArgs(2),
		RunE: withService(func(cmd *cobra.Command, svc *catalog.Service, args []string) error {
			quantity, err := models.ParseQuantity(args[1])
			if err != nil {
				return err
			}
			created, err := svc.Insert(cmd.Context(), args[0], quantity)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q with id %d\n", created.Name, created.ID)
			return nil
		}),
	}
}

func deleteCommand(withService serviceRunner) *cobra.Command {
	var prefix bool
	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete every product with this name",
		Args:  cobra.ExactArgs(1),
		RunE: withService(func(cmd *cobra.Command, svc *catalog.Service, args []string) error {
			n, err := svc.Delete(cmd.Context(), repo.NameMatch{Name: args[0], Prefix: prefix})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d product(s)\n", n)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&prefix, "prefix", false, "delete products whose name starts with NAME")
	return cmd
}

func searchCommand(withService serviceRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "search PREFIX",
		Short: "List products whose name starts with PREFIX",
		Args:  cobra.ExactArgs(1),
		RunE: withService(func(cmd *cobra.Command, svc *catalog.Service, args []string) error {
			found, err := svc.FindByNamePrefix(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printProducts(cmd.OutOrStdout(), found)
		}),
	}
}

func listCommand(withService serviceRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every product",
		Args:  cobra.NoArgs,
		RunE: withService(func(cmd *cobra.Command, svc *catalog.Service, args []string) error {
			all, err := svc.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			return printProducts(cmd.OutOrStdout(), all)
		}),
	}
}

func hashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password PASSWORD",
		Short: "Print a bcrypt hash for AUTH_ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func printProducts(out io.Writer, products []models.Product) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQUANTITY")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%d\n", p.ID, p.Name, p.Quantity)
	}
	return w.Flush()
}
