// Command faqedit is a terminal editor for the FAQ entries of one owner.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rentwheels/rental-admin/internal/domain"
	"github.com/rentwheels/rental-admin/internal/entryclient"
	"github.com/rentwheels/rental-admin/internal/tui"
)

type cliOptions struct {
	server    string
	token     string
	kind      string
	owner     string
	prefsPath string
	logFile   string
	asJSON    bool

	prefs  tui.Prefs
	log    zerolog.Logger
	closer io.Closer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "faqedit",
		Short: "Edit brand, vehicle and blog FAQs of the rental admin API",
		Long: `faqedit edits the ordered FAQ list of one owner (brand, vehicle bucket,
blog post or vehicle) against the rental admin API.

Run without a subcommand to open the interactive editor.`,
		SilenceUsage:      true,
		PersistentPreRunE: opts.prepare,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.closer != nil {
				_ = opts.closer.Close()
			}
		},
		RunE: opts.runEdit,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.server, "server", "", "API server host:port or URL (default from prefs)")
	flags.StringVar(&opts.token, "token", os.Getenv("FAQEDIT_TOKEN"), "admin bearer token (env FAQEDIT_TOKEN)")
	flags.StringVar(&opts.kind, "kind", "", "entry kind: BRAND, VEHICLE_BUCKET, BLOG or VEHICLE")
	flags.StringVar(&opts.owner, "owner", "", "owner id")
	flags.StringVar(&opts.prefsPath, "prefs", tui.DefaultPrefsPath(), "preferences file")
	flags.StringVar(&opts.logFile, "log-file", "", "write debug logs to this file")

	edit := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive FAQ editor",
		RunE:  opts.runEdit,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print the FAQs of an owner in display order",
		RunE:  opts.runList,
	}
	list.Flags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of text")

	root.AddCommand(edit, list)
	return root
}

// prepare resolves flags against saved preferences and opens the log.
func (o *cliOptions) prepare(cmd *cobra.Command, args []string) error {
	prefs, err := tui.LoadPrefs(o.prefsPath)
	if err != nil {
		return err
	}
	o.prefs = prefs

	if strings.TrimSpace(o.server) == "" {
		o.server = prefs.Server
	}
	if strings.TrimSpace(o.kind) == "" {
		o.kind = prefs.LastKind
	}
	if strings.TrimSpace(o.owner) == "" {
		o.owner = prefs.LastOwner
	}
	o.kind = strings.ToUpper(strings.TrimSpace(o.kind))
	if !domain.EntryKind(o.kind).IsValid() {
		return fmt.Errorf("unknown kind %q", o.kind)
	}

	o.log = zerolog.Nop()
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		o.closer = f
		o.log = zerolog.New(f).With().Timestamp().Str("app", "faqedit").Logger()
	}
	return nil
}

func (o *cliOptions) client() (*entryclient.Client, error) {
	return entryclient.NewClient(o.server, o.token)
}

func (o *cliOptions) runEdit(cmd *cobra.Command, args []string) error {
	client, err := o.client()
	if err != nil {
		return err
	}

	o.prefs.Server = o.server
	o.prefs.LastKind = o.kind
	o.prefs.LastOwner = o.owner

	o.log.Info().Str("server", o.server).Str("kind", o.kind).Str("owner_id", o.owner).Msg("starting editor")
	return tui.Run(tui.Options{
		Context:   cmd.Context(),
		Backend:   client,
		Kind:      domain.EntryKind(o.kind),
		OwnerID:   o.owner,
		Logger:    &o.log,
		Prefs:     o.prefs,
		PrefsPath: o.prefsPath,
	})
}

func (o *cliOptions) runList(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(o.owner) == "" {
		return fmt.Errorf("--owner is required")
	}
	client, err := o.client()
	if err != nil {
		return err
	}

	entries, err := client.ListEntries(cmd.Context(), domain.EntryKind(o.kind), o.owner)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if o.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintf(out, "no FAQs for %s %s\n", o.kind, o.owner)
		return err
	}
	for i, e := range entries {
		if _, err := fmt.Fprintf(out, "%d. %s\n   %s\n", i+1, e.Question, strings.ReplaceAll(e.Answer, "\n", "\n   ")); err != nil {
			return err
		}
	}
	return nil
}
