package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/currency"
)

// ConvertCmd creates the convert command
func ConvertCmd(app func() *AppContext) *cobra.Command {
	var (
		from   string
		to     string
		locale string
	)

	cmd := &cobra.Command{
		Use:   "convert <amount>",
		Short: "Convert an amount between configured currencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()

			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}

			rates, err := a.Cfg.Rates()
			if err != nil {
				return err
			}
			conv := currency.NewConverter(a.Cfg.BaseCurrency, rates)

			result, err := conv.Convert(amount, from, to)
			if err != nil {
				return err
			}

			fmt.Printf("%s = %s\n",
				conv.Format(amount, from, locale),
				conv.Format(result, to, locale))
			return nil
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "Source currency code")
	cmd.Flags().StringVarP(&to, "to", "t", "", "Target currency code")
	cmd.Flags().StringVarP(&locale, "locale", "l", "en-US", "Locale for formatting")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}
