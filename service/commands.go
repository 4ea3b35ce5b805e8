package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"blogcms/app/config"
	"blogcms/app/database"
	"blogcms/app/repositories"

	"github.com/spf13/cobra"
)

// Version is reported by the version command.
var Version = "1.0.0"

var errPostgresBackup = errors.New("backup and restore are not supported for postgres, use pg_dump and pg_restore")

// NewRootCmd builds the blogcms command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "blogcms",
		Short:         "A small blog content management server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		ServeCmd(),
		InitCmd(),
		CleanCmd(),
		BackupCmd(),
		RestoreCmd(),
		VersionCmd(),
	)
	return rootCmd
}

func ServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the blog web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return RunAppServer(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides ADDR")
	return cmd
}

func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if path := storePath(cfg); path != "" && exists(path) {
				fmt.Fprintln(out, "Database already exists. Use 'clean' first if you want to reinitialize.")
				return nil
			}
			if path := storePath(cfg); path != "" && cfg.DBDriver == config.DriverSQLite {
				if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
					return fmt.Errorf("failed to create database directory: %w", err)
				}
			}

			st, err := openStore(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer st.Close()

			fmt.Fprintln(out, "Database initialized successfully")
			return nil
		},
	}
}

func CleanCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete every post from the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			path := storePath(cfg)
			if path != "" && !exists(path) {
				fmt.Fprintln(out, "Database is already clean (does not exist)")
				return nil
			}

			if !yes && !confirm(cmd.InOrStdin(), out, "Are you sure you want to clean the database? This cannot be undone.") {
				fmt.Fprintln(out, "Operation cancelled")
				return nil
			}

			if path == "" {
				err = clearRelational(cfg)
			} else {
				err = removeStore(cfg)
			}
			if err != nil {
				return fmt.Errorf("failed to clean database: %w", err)
			}
			fmt.Fprintln(out, "Database cleaned successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func BackupCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			path := storePath(cfg)
			if path == "" {
				return errPostgresBackup
			}
			if !exists(path) {
				fmt.Fprintln(out, "No database exists to backup")
				return nil
			}

			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create backup directory: %w", err)
			}
			backupFile := filepath.Join(dir, fmt.Sprintf("backup_%s_%d.db", cfg.DBDriver, time.Now().Unix()))
			if err := backup(cfg, backupFile); err != nil {
				os.Remove(backupFile)
				return fmt.Errorf("failed to backup database: %w", err)
			}

			fmt.Fprintf(out, "Database backed up successfully to %s\n", backupFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", filepath.Join("data", "backups"), "directory the backup file is written to")
	return cmd
}

func RestoreCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "restore [file]",
		Short: "Restore the database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			backupFile := args[0]

			path := storePath(cfg)
			if path == "" {
				return errPostgresBackup
			}

			fi, err := os.Stat(backupFile)
			if err != nil {
				return fmt.Errorf("backup file does not exist: %s", backupFile)
			}
			if fi.Size() == 0 {
				return fmt.Errorf("backup file is empty: %s", backupFile)
			}

			if exists(path) {
				if !yes && !confirm(cmd.InOrStdin(), out, "Existing database found. Do you want to replace it?") {
					fmt.Fprintln(out, "Operation cancelled")
					return errors.New("restore cancelled")
				}
			}

			if err := restore(cfg, backupFile); err != nil {
				return fmt.Errorf("failed to restore database: %w", err)
			}
			fmt.Fprintln(out, "Database restored successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace an existing database without asking")
	return cmd
}

func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blogcms version %s\n", Version)
		},
	}
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	var response string
	fmt.Fscanln(in, &response)
	return response == "y" || response == "Y"
}

// clearRelational deletes every row of the post table on a database server.
func clearRelational(cfg *config.Config) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.db.Exec("DELETE FROM blog_post").Error
}

func backup(cfg *config.Config, backupFile string) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if st.badger != nil {
		f, err := os.Create(backupFile)
		if err != nil {
			return err
		}
		defer f.Close()
		return st.badger.Backup(f)
	}
	return st.db.Exec("VACUUM INTO ?", backupFile).Error
}

// restore loads backupFile into a staging copy next to the live store and
// swaps it in only once it opens cleanly. The live store is untouched when the
// backup is unusable.
func restore(cfg *config.Config, backupFile string) error {
	f, err := os.Open(backupFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if cfg.DBDriver == config.DriverBadger {
		return restoreBadger(cfg.BadgerPath, f)
	}
	return restoreSQLite(cfg, f)
}

func restoreBadger(path string, backup io.Reader) error {
	staging := path + ".restore"
	if err := os.RemoveAll(staging); err != nil {
		return err
	}

	err := func() error {
		repo, err := repositories.NewRepository(staging)
		if err != nil {
			return err
		}
		defer repo.Close()
		return repo.Restore(backup)
	}()
	if err != nil {
		os.RemoveAll(staging)
		return err
	}

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove existing database: %w", err)
	}
	return os.Rename(staging, path)
}

func restoreSQLite(cfg *config.Config, backup io.Reader) error {
	path := cfg.DatabaseURL
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	staging := path + ".restore"
	if err := copyToFile(staging, backup); err != nil {
		removeSQLite(staging)
		return err
	}

	// Opening migrates the schema, which fails on a file that is not sqlite.
	stagingCfg := *cfg
	stagingCfg.DatabaseURL = staging
	db, err := database.Open(&stagingCfg)
	if err == nil {
		err = database.Close(db)
	}
	if err != nil {
		removeSQLite(staging)
		return err
	}

	if err := removeSQLite(path); err != nil {
		return fmt.Errorf("failed to remove existing database: %w", err)
	}
	if err := os.Rename(staging, path); err != nil {
		return err
	}
	return removeSQLite(staging)
}

func copyToFile(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// Execute runs the command tree with args and returns an exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
