package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/fine-structures/hess/hess"
	"github.com/fine-structures/hess/libhess"
	"github.com/fine-structures/hess/libhess/catalog"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

func main() {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "1")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	root := newRootCmd()
	root.PersistentFlags().AddGoFlagSet(fset)

	err := root.Execute()
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "hess",
		Short:         "computes Hessenberg character tables",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")

	loadConfig := func(cmd *cobra.Command) (Config, error) {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		flags := cmd.Flags()
		if flags.Changed("sizes") {
			cfg.Sizes, _ = flags.GetIntSlice("sizes")
		}
		if flags.Changed("kinds") {
			cfg.Kinds, _ = flags.GetStringSlice("kinds")
		}
		if flags.Changed("catalog") {
			cfg.Catalog, _ = flags.GetString("catalog")
		}
		if flags.Changed("workers") {
			cfg.Workers, _ = flags.GetInt("workers")
		}
		if flags.Changed("skip-existing") {
			cfg.SkipExisting, _ = flags.GetBool("skip-existing")
		}
		return cfg, nil
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "computes tables for every path of the configured sizes into a catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return doRun(cmd.Context(), cfg)
		},
	}
	runCmd.Flags().IntSlice("sizes", nil, "path sizes to enumerate")
	runCmd.Flags().StringSlice("kinds", nil, "table kinds (left, right, csf)")
	runCmd.Flags().String("catalog", "", "catalog db path (empty for in-memory)")
	runCmd.Flags().Int("workers", 0, "max concurrent paths (0 for GOMAXPROCS)")
	runCmd.Flags().Bool("skip-existing", true, "skip tables already in the catalog")

	showCmd := &cobra.Command{
		Use:   "show <kind> <path>",
		Short: "prints one table, from the catalog if it has it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return doShow(cfg, args[0], args[1])
		},
	}
	showCmd.Flags().String("catalog", "", "catalog db path")

	checkCmd := &cobra.Command{
		Use:   "check <n>...",
		Short: "checks every right table of the given sizes against the regular representation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg.Sizes = cfg.Sizes[:0]
			for _, arg := range args {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return errors.Wrapf(hess.ErrBadSize, "%q", arg)
				}
				cfg.Sizes = append(cfg.Sizes, n)
			}
			return doCheck(cfg)
		},
	}

	scriptCmd := &cobra.Command{
		Use:   "script [file.py]",
		Short: "runs a gpython script with the _hess module (or a REPL)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathname := ""
			if len(args) > 0 {
				pathname = args[0]
			}
			return runScript(pathname, nil)
		},
	}

	root.AddCommand(runCmd, showCmd, checkCmd, scriptCmd)
	return root
}

func doRun(runCtx context.Context, cfg Config) error {
	opts, err := cfg.RunOpts()
	if err != nil {
		return err
	}
	if runCtx == nil {
		runCtx = context.Background()
	}
	runCtx, stop := signal.NotifyContext(runCtx, os.Interrupt)
	defer stop()

	ctx, err := libhess.NewContext(cfg.ContextOpts())
	if err != nil {
		return err
	}
	defer ctx.Close()

	cat, err := catalog.OpenCatalog(hess.CatalogOpts{
		DbPathName: cfg.Catalog,
	})
	if err != nil {
		return err
	}
	defer cat.Close()

	stats, err := ctx.Run(runCtx, opts, cat)
	if err != nil {
		return err
	}
	for _, n := range opts.Sizes {
		for _, kind := range opts.Kinds {
			klog.Infof("%-10v n=%d: %d tables", kind, n, cat.NumTables(kind, n))
		}
	}
	fmt.Printf("computed %d, skipped %d\n", stats.Computed, stats.Skipped)
	return nil
}

func doShow(cfg Config, kindName, pathExpr string) error {
	kind, err := hess.ParseTableKind(kindName)
	if err != nil {
		return errors.Wrapf(err, "%q", kindName)
	}
	path, err := hess.ParsePath(pathExpr)
	if err != nil {
		return err
	}

	var T *hess.Table
	if len(cfg.Catalog) > 0 {
		cat, err := catalog.OpenCatalog(hess.CatalogOpts{
			DbPathName: cfg.Catalog,
			ReadOnly:   true,
		})
		if err != nil {
			return err
		}
		T, err = cat.GetTable(kind, path)
		cat.Close()
		if err != nil && !errors.Is(err, hess.ErrTableNotFound) {
			return err
		}
	}

	if T == nil {
		ctx, err := libhess.NewContext(cfg.ContextOpts())
		if err != nil {
			return err
		}
		defer ctx.Close()
		if T, err = ctx.ComputeTable(kind, path); err != nil {
			return err
		}
	}

	_, err = T.WriteTo(os.Stdout)
	return err
}

func doCheck(cfg Config) error {
	ctx, err := libhess.NewContext(cfg.ContextOpts())
	if err != nil {
		return err
	}
	defer ctx.Close()

	failed := 0
	for _, n := range cfg.Sizes {
		paths := hess.EnumPaths(n)
		for _, path := range paths {
			sum, ok, err := ctx.CheckRegular(path)
			if err != nil {
				return err
			}
			if !ok {
				failed++
				klog.Errorf("%v: not regular (identity row sums to %d)", path, sum)
			}
		}
		klog.Infof("n=%d: checked %d paths", n, len(paths))
	}
	if failed > 0 {
		return errors.Errorf("%d paths failed the regular check", failed)
	}
	fmt.Println("all paths regular")
	return nil
}
