package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zensend/zensend-go/internal/config"
	"github.com/zensend/zensend-go/internal/infra/logger"
	"github.com/zensend/zensend-go/internal/infra/provider"
	"github.com/zensend/zensend-go/zensend"
)

// ProviderFactory builds the API client used by the API subcommands.
type ProviderFactory func(cfg *config.Config, log *logger.Logger) (provider.ISmsProvider, error)

// DefaultProviderFactory talks to the configured ZenSend deployment.
func DefaultProviderFactory(cfg *config.Config, log *logger.Logger) (provider.ISmsProvider, error) {
	client, err := provider.NewZenSendProvider(cfg, log)
	if err != nil {
		return nil, err
	}
	return client, nil
}

type Commands struct {
	Config      *config.Config
	Logger      *logger.Logger
	Out         io.Writer
	NewProvider ProviderFactory
}

func NewCommands(cfg *config.Config, log *logger.Logger, out io.Writer, newProvider ProviderFactory) *Commands {
	return &Commands{Config: cfg, Logger: log, Out: out, NewProvider: newProvider}
}

// NewRootCommand wires every subcommand under a single zensend root.
func (c *Commands) NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "zensend",
		Short: "ZenSend SMS API client",
		Long: `Command line client for the ZenSend SMS API.

Credentials and endpoint come from ZENSEND_API_KEY and ZENSEND_URL, read
from the environment or a .env file. The sandbox subcommand serves a local
imitation of the API for development.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&c.Config.BaseURL, "url", c.Config.BaseURL, "API base URL")

	root.AddCommand(
		c.sendSMSCommand(),
		c.createKeywordCommand(),
		c.balanceCommand(),
		c.pricesCommand(),
		c.operatorLookupCommand(),
		c.createSubAccountCommand(),
		c.sandboxCommand(),
	)
	return root
}

func (c *Commands) sendSMSCommand() *cobra.Command {
	var (
		originator     string
		body           string
		numbers        []string
		originatorType string
		encoding       string
		ttl            int
	)

	cmd := &cobra.Command{
		Use:   "send-sms",
		Short: "Send an SMS to one or more numbers",
		Example: `  zensend send-sms --originator ZenSend --body "Hello" --numbers 447796351234,447796351235
  zensend send-sms --originator 447700900123 --originator-type msisdn --body "Hi" --numbers 447796351234 --ttl 60`,
		RunE: func(cmd *cobra.Command, args []string) error {
			origType, err := zensend.ParseOriginatorType(originatorType)
			if err != nil {
				return err
			}
			enc, err := zensend.ParseEncoding(encoding)
			if err != nil {
				return err
			}

			msg := zensend.Message{
				Originator:     originator,
				Body:           body,
				Numbers:        numbers,
				OriginatorType: origType,
				Encoding:       enc,
			}
			if cmd.Flags().Changed("ttl") {
				msg.TimeToLiveInMinutes = zensend.Int(ttl)
			}

			client, err := c.NewProvider(c.Config, c.Logger)
			if err != nil {
				return err
			}
			res, err := client.SendSMS(cmd.Context(), msg)
			if err != nil {
				return err
			}
			return c.print(res)
		},
	}

	cmd.Flags().StringVar(&originator, "originator", "", "Sender shown on the handset")
	cmd.Flags().StringVar(&body, "body", "", "Message text")
	cmd.Flags().StringSliceVar(&numbers, "numbers", nil, "Comma separated recipient numbers")
	cmd.Flags().StringVar(&originatorType, "originator-type", "alpha", "alpha or msisdn")
	cmd.Flags().StringVar(&encoding, "encoding", "auto", "auto, gsm or ucs2")
	cmd.Flags().IntVar(&ttl, "ttl", 0, "Time to live in minutes")
	cmd.MarkFlagRequired("originator")
	cmd.MarkFlagRequired("body")
	cmd.MarkFlagRequired("numbers")

	return cmd
}

func (c *Commands) createKeywordCommand() *cobra.Command {
	var (
		shortcode string
		keyword   string
		sticky    bool
		moURL     string
	)

	cmd := &cobra.Command{
		Use:   "create-keyword",
		Short: "Register a keyword on a shortcode",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := zensend.CreateKeywordRequest{Shortcode: shortcode, Keyword: keyword, IsSticky: sticky}
			if moURL != "" {
				req.MoURL = zensend.String(moURL)
			}

			client, err := c.NewProvider(c.Config, c.Logger)
			if err != nil {
				return err
			}
			res, err := client.CreateKeyword(cmd.Context(), req)
			if err != nil {
				return err
			}
			return c.print(res)
		},
	}

	cmd.Flags().StringVar(&shortcode, "shortcode", "", "Shortcode to register on")
	cmd.Flags().StringVar(&keyword, "keyword", "", "Keyword to register")
	cmd.Flags().BoolVar(&sticky, "sticky", false, "Keep routing replies to this keyword")
	cmd.Flags().StringVar(&moURL, "mo-url", "", "URL that receives inbound messages")
	cmd.MarkFlagRequired("shortcode")
	cmd.MarkFlagRequired("keyword")

	return cmd
}

func (c *Commands) balanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the account balance in pence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.NewProvider(c.Config, c.Logger)
			if err != nil {
				return err
			}
			balance, err := client.CheckBalance(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(map[string]float64{"balance": balance})
		},
	}
}

func (c *Commands) pricesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "Show the price per SMS part in pence by country",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.NewProvider(c.Config, c.Logger)
			if err != nil {
				return err
			}
			prices, err := client.GetPrices(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(prices)
		},
	}
}

func (c *Commands) operatorLookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "operator-lookup NUMBER",
		Short: "Find the network operator of a number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.NewProvider(c.Config, c.Logger)
			if err != nil {
				return err
			}
			res, err := client.LookupOperator(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.print(res)
		},
	}
}

func (c *Commands) createSubAccountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create-sub-account NAME",
		Short: "Create a sub-account and print its API key",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.NewProvider(c.Config, c.Logger)
			if err != nil {
				return err
			}
			res, err := client.CreateSubAccount(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return c.print(res)
		},
	}
}

func (c *Commands) print(v any) error {
	enc := json.NewEncoder(c.Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
