package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/carlosfiori/conversor-clima/internal/config"
	"github.com/carlosfiori/conversor-clima/internal/fetch"
	"github.com/carlosfiori/conversor-clima/internal/prefs"
	"github.com/carlosfiori/conversor-clima/internal/weather"
	"github.com/carlosfiori/conversor-clima/internal/weather/api"
)

var errNoCity = errors.New("no city given and none stored")

func weatherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weather",
		Short: "Serve the weather widget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := bootstrap(cmd.Context(), config.DefaultWeatherPort)
			if err != nil {
				return err
			}
			defer d.close(context.Background())

			lookup, store, err := newLookup(d)
			if err != nil {
				return err
			}
			defer store.Close()

			// Restore before accepting requests so a user's first search is
			// never superseded by the stored city.
			if _, ok := lookup.Restore(cmd.Context()); ok {
				d.logger.Info("Restored last city", zap.String("city", lookup.Query()))
			}

			handler := api.NewHandler(lookup, d.logger)
			return serve(d.logger, "weather", d.cfg.Port, api.SetupRouter(handler))
		},
	}
}

func lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup [CITY]",
		Short: "Look up the weather for CITY, or for the last stored city",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := bootstrap(cmd.Context(), config.DefaultWeatherPort)
			if err != nil {
				return err
			}
			defer d.close(context.Background())

			lookup, store, err := newLookup(d)
			if err != nil {
				return err
			}
			defer store.Close()

			var state weather.State
			if len(args) == 1 {
				state = lookup.Search(cmd.Context(), args[0])
			} else {
				var ok bool
				if state, ok = lookup.Restore(cmd.Context()); !ok {
					return errNoCity
				}
			}

			if state.Status == fetch.StatusError {
				return errors.New(state.Error)
			}
			if state.Result == nil {
				return errNoCity
			}

			v := weather.NewView(lookup.Query(), state, time.Now())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s, %s\n", v.City, v.Country)
			fmt.Fprintf(out, "%s  %s\n", v.Temperature, v.Description)
			fmt.Fprintf(out, "Humidity: %d%%\n", v.Humidity)
			fmt.Fprintf(out, "Background: %s\n", v.Background)
			return nil
		},
	}
}

func newLookup(d *deps) (*weather.Lookup, *prefs.SQLiteStore, error) {
	if err := d.cfg.RequireWeatherKey(); err != nil {
		d.logger.Error("Missing configuration", zap.Error(err))
		return nil, nil, err
	}

	store, err := prefs.NewSQLite(d.cfg.PrefsDB, d.logger)
	if err != nil {
		return nil, nil, err
	}

	client := weather.NewOWMClient(d.cfg.WeatherAPIURL, d.cfg.WeatherAPIKey, d.cfg.WeatherLang, d.httpClient)
	return weather.NewLookup(client, store, d.logger), store, nil
}
