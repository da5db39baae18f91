package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ezrec/robox/config"
	"github.com/ezrec/robox/event"
	"github.com/ezrec/robox/translate"
)

// app is the state shared by the subcommands once configuration is loaded.
type app struct {
	cfg  config.Config
	sink event.Sink
}

func (a *app) emit(sev event.Severity, msg string, err error) {
	if a.sink == nil {
		return
	}

	a.sink.Emit(event.Event{
		Time:     time.Now(),
		Location: event.LOC_CLI,
		Severity: sev,
		Message:  msg,
		Err:      err,
	})
}

// flagKeys maps configuration keys to the flags that override them.
var flagKeys = map[string]string{
	"log.verbose":   "verbose",
	"log.format":    "log-format",
	"lang":          "lang",
	"levels.dir":    "levels",
	"run.gap":       "gap",
	"run.max_steps": "max-steps",
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) (err error) {
	for key, name := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		err = v.BindPFlag(key, flag)
		if err != nil {
			return
		}
	}

	return
}

func newRootCmd() *cobra.Command {
	a := &app{}

	var configPath string

	rootCmd := &cobra.Command{
		Use:           "robox",
		Short:         "Mailroom robot puzzle runner",
		Long:          "robox assembles robot programs, runs them against puzzle levels, and reports whether the outbox matches the goal.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) (err error) {
			v := config.New()
			err = bindFlags(v, cmd)
			if err != nil {
				return
			}

			a.cfg, err = config.Load(v, configPath)
			if err != nil {
				return
			}

			if len(a.cfg.Lang) != 0 {
				translate.SetLanguage(a.cfg.Lang)
			}

			a.sink = event.NewLogger(cmd.ErrOrStderr(), a.cfg.Log.Verbose, a.cfg.Log.Format == "json")

			return
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "configuration file (default $HOME/.config/robox/config.toml)")
	flags.BoolP("verbose", "v", false, "log every event, not only faults")
	flags.String("log-format", "text", "event log format: text or json")
	flags.String("lang", "", "message language, as a BCP 47 tag")
	flags.String("levels", "levels", "directory searched for level names")

	rootCmd.AddCommand(
		newRunCmd(a),
		newCheckCmd(a),
		newOpsCmd(),
		newLevelsCmd(a),
	)

	return rootCmd
}
