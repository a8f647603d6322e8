package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/subscription-tracker/internal"
	"github.com/sirupsen/logrus"
)

type Params struct {
	Add    bool   `descr:"Add a subscription (with --provider, --amount, --cycle, --start, --renewal)"`
	Edit   string `descr:"Edit the subscription with this id" optional:"true"`
	Delete string `descr:"Delete the subscription with this id" optional:"true"`
	Cancel string `descr:"Cancel the subscription with this id (moves it to history)" optional:"true"`
	Renew  string `descr:"Renew the subscription with this id by one billing cycle" optional:"true"`

	Provider string `descr:"Service provider name" optional:"true"`
	Amount   string `descr:"Charge amount, e.g. 15.49" optional:"true"`
	Cycle    string `descr:"Billing cycle" alts:"monthly,yearly,one-time" optional:"true"`
	Start    string `descr:"Start date (YYYY-MM-DD)" optional:"true"`
	Renewal  string `descr:"Renewal date (YYYY-MM-DD)" optional:"true"`
	Details  string `descr:"Free-form note" optional:"true"`

	Sort     string `descr:"Active list sort key" alts:"renewalDate,serviceProvider,amount" optional:"true"`
	Output   string `descr:"Output format" alts:"table,json" optional:"true"`
	Currency string `descr:"Display currency code, e.g. EUR or USD" optional:"true"`

	Import string `descr:"Import subscriptions from a file (json or xlsx, optionally prefixed 'format:')" optional:"true"`
	Export string `descr:"Export subscriptions to an xlsx file" optional:"true"`

	Config  string `descr:"Path to the config file" optional:"true"`
	DataDir string `descr:"Directory holding subscription data" optional:"true"`

	EnableNotifications  bool `descr:"Turn renewal reminders on and remember the choice"`
	DisableNotifications bool `descr:"Turn renewal reminders off and remember the choice"`
	NoNotify             bool `descr:"Skip reminder dispatch for this run"`
}

func main() {
	boa.NewCmdT[Params]("subscription-tracker").
		WithShort("Track recurring subscriptions and upcoming renewals").
		WithLong("Keeps a device-local list of subscriptions, shows a dashboard of active and expired entries with cost totals, and reminds you a few days before a renewal charges.").
		WithRunFunc(func(params *Params) {
			if err := run(params); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}

func run(p *Params) error {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	configPath := p.Config
	if configPath == "" {
		configPath = internal.DefaultConfigPath()
	}
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return err
	}

	if p.EnableNotifications || p.DisableNotifications {
		if p.EnableNotifications && p.DisableNotifications {
			return fmt.Errorf("--enable-notifications and --disable-notifications are mutually exclusive")
		}
		if p.EnableNotifications {
			cfg.Notifications = internal.PermissionGranted
		} else {
			cfg.Notifications = internal.PermissionDenied
		}
		if err := cfg.Save(configPath); err != nil {
			return err
		}
	}

	dataDir := p.DataDir
	if dataDir == "" {
		dataDir = cfg.DataDir
	}
	if dataDir == "" {
		dataDir = internal.DefaultDataDir()
	}
	if dataDir == "" {
		return fmt.Errorf("could not determine data directory, use --data-dir")
	}

	storage := internal.NewFileStorage(dataDir)
	store := internal.NewStore(storage, log)
	now := time.Now()
	store.Load(now)

	curr := cfg.DisplayCurrency()
	if p.Currency != "" {
		curr = internal.GetCurrency(p.Currency)
	}

	if err := dispatch(p, store, now); err != nil {
		return err
	}

	sortKey := cfg.SortKey()
	switch internal.SortKey(p.Sort) {
	case internal.SortByRenewalDate, internal.SortByServiceProvider, internal.SortByAmount:
		sortKey = internal.SortKey(p.Sort)
	}

	views := internal.ComputeViews(store.Subscriptions(), now, sortKey, curr.Locale())

	switch p.Output {
	case "json":
		internal.PrintViewsJSON(os.Stdout, views, now, curr)
	default:
		internal.PrintDashboard(os.Stdout, views, now, internal.OutputOptions{Sort: sortKey, Currency: curr})
		if cfg.Notifications == internal.PermissionDefault {
			fmt.Println("\nRenewal reminders are off. Run with --enable-notifications to turn them on.")
		}
	}

	if p.Export != "" {
		if err := internal.ExportXLSX(p.Export, views); err != nil {
			return fmt.Errorf("exporting to %s: %w", p.Export, err)
		}
		fmt.Fprintf(os.Stderr, "Exported %d subscriptions to %s\n", len(views.Active)+len(views.Expired), p.Export)
	}

	if !p.NoNotify {
		reminders := internal.NewReminderService(storage, internal.DesktopNotifier{}, cfg.Notifications, curr, log)
		reminders.Dispatch(store.Subscriptions(), now)
	}

	return nil
}

// dispatch applies at most one mutation per invocation, before the views are
// computed, so the printed dashboard always reflects the change.
func dispatch(p *Params, store *internal.Store, now time.Time) error {
	actions := 0
	for _, active := range []bool{p.Add, p.Edit != "", p.Delete != "", p.Cancel != "", p.Renew != "", p.Import != ""} {
		if active {
			actions++
		}
	}
	if actions > 1 {
		return fmt.Errorf("choose one of --add, --edit, --delete, --cancel, --renew, --import")
	}

	switch {
	case p.Add:
		sub, err := subscriptionFromFlags(p, internal.Subscription{})
		if err != nil {
			return err
		}
		if _, err := store.Add(sub); err != nil {
			return fmt.Errorf("changes not saved: %w", err)
		}

	case p.Edit != "":
		existing, ok := store.Get(p.Edit)
		if !ok {
			return fmt.Errorf("no subscription with id %s", p.Edit)
		}
		sub, err := subscriptionFromFlags(p, existing)
		if err != nil {
			return err
		}
		if _, err := store.Update(sub); err != nil {
			return fmt.Errorf("changes not saved: %w", err)
		}

	case p.Delete != "":
		if _, err := store.Delete(p.Delete); err != nil {
			return fmt.Errorf("changes not saved: %w", err)
		}

	case p.Cancel != "":
		if _, err := store.Cancel(p.Cancel, now); err != nil {
			return fmt.Errorf("changes not saved: %w", err)
		}

	case p.Renew != "":
		sub, ok := store.Get(p.Renew)
		if !ok {
			return fmt.Errorf("no subscription with id %s", p.Renew)
		}
		if _, err := store.Renew(sub); err != nil {
			return fmt.Errorf("changes not saved: %w", err)
		}

	case p.Import != "":
		return runImport(p.Import, store)
	}

	return nil
}

// subscriptionFromFlags overlays the provided flags on base and validates the
// result. For --add the base is empty, for --edit it is the stored record.
func subscriptionFromFlags(p *Params, base internal.Subscription) (internal.Subscription, error) {
	sub := base
	if p.Provider != "" {
		sub.ServiceProvider = p.Provider
	}
	if p.Amount != "" {
		amount, err := parseAmount(p.Amount)
		if err != nil {
			return internal.Subscription{}, err
		}
		sub.Amount = amount
	}
	if p.Cycle != "" {
		sub.BillingCycle = internal.BillingCycle(p.Cycle)
	}
	if p.Start != "" {
		sub.StartDate = p.Start
	}
	if p.Renewal != "" {
		sub.RenewalDate = p.Renewal
	}
	if p.Details != "" {
		sub.Details = p.Details
	}

	if err := internal.ValidateSubscription(sub); err != nil {
		var fieldErrs internal.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, line := range strings.Split(fieldErrs.Error(), "; ") {
				fmt.Fprintf(os.Stderr, "  %s\n", line)
			}
			return internal.Subscription{}, fmt.Errorf("invalid subscription")
		}
		return internal.Subscription{}, err
	}
	return sub, nil
}

func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}

func runImport(arg string, store *internal.Store) error {
	format, path := internal.ParseImportArg(arg)
	if format == "" {
		return fmt.Errorf("cannot determine import format for %s (available: %v)", path, internal.AvailableFormats())
	}
	importer, err := internal.GetImporter(format)
	if err != nil {
		return err
	}
	subs, err := importer.Import(path)
	if err != nil {
		return fmt.Errorf("importing %s: %w", path, err)
	}

	imported := 0
	for _, sub := range subs {
		if err := internal.ValidateSubscription(sub); err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %q: %v\n", sub.ServiceProvider, err)
			continue
		}
		if _, err := store.Add(sub); err != nil {
			return fmt.Errorf("changes not saved: %w", err)
		}
		imported++
	}
	fmt.Fprintf(os.Stderr, "Imported %d subscriptions from %s\n", imported, path)
	return nil
}
