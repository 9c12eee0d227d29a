package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carlosfiori/conversor-clima/internal/config"
	"github.com/carlosfiori/conversor-clima/internal/currency"
	"github.com/carlosfiori/conversor-clima/internal/currency/api"
	"github.com/carlosfiori/conversor-clima/internal/fetch"
)

func currencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currency",
		Short: "Serve the currency converter widget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := bootstrap(cmd.Context(), config.DefaultCurrencyPort)
			if err != nil {
				return err
			}
			defer d.close(context.Background())

			rates := currency.NewERAPIClient(d.cfg.ExchangeAPIURL, d.httpClient)
			handler := api.NewHandler(currency.NewConverter(rates, d.logger), d.logger)

			return serve(d.logger, "currency", d.cfg.Port, api.SetupRouter(handler))
		},
	}
}

func convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "convert AMOUNT FROM TO",
		Short:   "Convert an amount once and print the result",
		Example: "  server convert 10 BRL USD",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := bootstrap(cmd.Context(), config.DefaultCurrencyPort)
			if err != nil {
				return err
			}
			defer d.close(context.Background())

			rates := currency.NewERAPIClient(d.cfg.ExchangeAPIURL, d.httpClient)
			converter := currency.NewConverter(rates, d.logger)

			state := converter.Submit(cmd.Context(), currency.Form{Amount: args[0], From: args[1], To: args[2]})
			if state.Status == fetch.StatusError {
				return errors.New(state.Error)
			}
			fmt.Fprintln(cmd.OutOrStdout(), currency.Render(*state.Result))
			return nil
		},
	}
}
