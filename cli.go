package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/borgmon/deskclock/pkg/alarm"
	"github.com/borgmon/deskclock/pkg/calendar"
	"github.com/borgmon/deskclock/pkg/config"
	"github.com/borgmon/deskclock/pkg/models"
	"github.com/borgmon/deskclock/pkg/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var alarmsCmd = &cobra.Command{
	Use:   "alarms",
	Short: "Manage alarms without starting the app",
}

var alarmsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List alarms in display order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		return withManager(func(cfg *config.Config, m *alarm.Manager) error {
			return printAlarms(cmd.OutOrStdout(), m, cfg.HonorRepeatDays, output)
		})
	},
}

var alarmsAddCmd = &cobra.Command{
	Use:   "add HH:MM",
	Short: "Add an alarm",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tod, err := models.ParseTimeOfDay(args[0])
		if err != nil {
			return err
		}
		daysFlag, _ := cmd.Flags().GetString("days")
		days, err := models.ParseWeekdays(daysFlag)
		if err != nil {
			return err
		}

		return withManager(func(_ *config.Config, m *alarm.Manager) error {
			a, err := m.AddAlarm(tod, days)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added alarm %s\n", a.Label())
			return nil
		})
	},
}

var alarmsRemoveCmd = &cobra.Command{
	Use:   "remove INDEX",
	Short: "Remove the alarm at INDEX as shown by 'alarms list'",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[0], err)
		}

		return withManager(func(_ *config.Config, m *alarm.Manager) error {
			alarms := m.Alarms()
			if index < 1 || index > len(alarms) {
				return fmt.Errorf("index %d out of range, have %d alarms", index, len(alarms))
			}
			a := alarms[index-1]
			if err := m.RemoveAlarm(a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed alarm %s\n", a.Label())
			return nil
		})
	},
}

var alarmsExportCmd = &cobra.Command{
	Use:   "export FILE.ics",
	Short: "Export alarms as an iCalendar file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(cfg *config.Config, m *alarm.Manager) error {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create %s: %w", args[0], err)
			}
			defer f.Close()

			records := alarmRecords(m)
			if err := calendar.ExportICS(f, records, alarm.SystemClock{}.Now(), cfg.HonorRepeatDays); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d alarms to %s\n", len(records), args[0])
			return nil
		})
	},
}

var alarmsImportCmd = &cobra.Command{
	Use:   "import FILE.ics",
	Short: "Add one alarm per event of an iCalendar file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		records, err := calendar.ImportICS(f)
		if err != nil {
			return err
		}

		return withManager(func(_ *config.Config, m *alarm.Manager) error {
			for _, rec := range records {
				if _, err := m.AddAlarm(rec.TimeOfDay, rec.RepeatDays); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d alarms from %s\n", len(records), args[0])
			return nil
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent alarm activity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		history := store.NewHistoryStore(cfg.HistoryDB)
		ctx := context.Background()
		if err := history.Init(ctx); err != nil {
			return err
		}
		defer history.Close()

		entries, err := history.Recent(ctx, limit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tALARM\tACTION\tSNOOZE")
		for _, e := range entries {
			snooze := ""
			if e.SnoozeMinutes > 0 {
				snooze = fmt.Sprintf("%dm", e.SnoozeMinutes)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.At.Local().Format("2006-01-02 15:04:05"), e.TimeOfDay, e.Action, snooze)
		}
		return w.Flush()
	},
}

func init() {
	alarmsListCmd.Flags().StringP("output", "o", "table", "output format: table, json or yaml")
	alarmsAddCmd.Flags().String("days", "", "comma-separated repeat days, e.g. Mon,Wed,Fri")
	historyCmd.Flags().IntP("limit", "n", 20, "number of entries to show")

	alarmsCmd.AddCommand(alarmsListCmd, alarmsAddCmd, alarmsRemoveCmd, alarmsExportCmd, alarmsImportCmd)
}

// withManager loads the configured alarm file into a silent manager. Changes are
// journaled to the history database when it can be opened.
func withManager(fn func(*config.Config, *alarm.Manager) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var opts []alarm.Option
	history := store.NewHistoryStore(cfg.HistoryDB)
	if err := history.Init(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history unavailable: %v\n", err)
	} else {
		defer history.Close()
		opts = append(opts, alarm.WithRecorder(history))
	}

	env := &alarm.Env{HonorRepeatDays: cfg.HonorRepeatDays}
	m := alarm.NewManager(store.NewFileAlarmStore(cfg.AlarmsFile), env, opts...)
	return fn(cfg, m)
}

func alarmRecords(m *alarm.Manager) []models.AlarmRecord {
	alarms := m.Alarms()
	records := make([]models.AlarmRecord, len(alarms))
	for i, a := range alarms {
		records[i] = a.Record()
	}
	return records
}

type alarmListing struct {
	Index      int              `json:"index" yaml:"index"`
	TimeOfDay  models.TimeOfDay `json:"time_of_day" yaml:"time_of_day"`
	RepeatDays []models.Weekday `json:"repeat_days" yaml:"repeat_days"`
	Next       string           `json:"next,omitempty" yaml:"next,omitempty"`
}

func printAlarms(w io.Writer, m *alarm.Manager, honorDays bool, output string) error {
	now := alarm.SystemClock{}.Now()

	listings := []alarmListing{}
	for i, rec := range alarmRecords(m) {
		listing := alarmListing{Index: i + 1, TimeOfDay: rec.TimeOfDay, RepeatDays: rec.RepeatDays}
		if next, err := calendar.NextOccurrence(rec, now, honorDays); err == nil {
			listing.Next = next.Format("Mon 2006-01-02 15:04")
		}
		listings = append(listings, listing)
	}

	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listings)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(listings)
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tTIME\tDAYS\tNEXT")
		for _, l := range listings {
			days := models.AlarmRecord{RepeatDays: l.RepeatDays}.DaysLabel()
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", l.Index, l.TimeOfDay, days, l.Next)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
