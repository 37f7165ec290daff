package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"interactsh/internal/app"
	"interactsh/internal/logging"
)

var (
	configPath string
	flagCfg    = app.Default()
	rawLogs    bool
	appCtx     *app.App
)

func Execute() error {
	root := &cobra.Command{
		Use:          "interactsh-client",
		Short:        "Client for out-of-band interaction servers",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.ConfigureRuntime()
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd.Flags(), &cfg)
			w, err := app.NewWire(cfg, logger)
			if err != nil {
				return err
			}
			appCtx = app.New(w, cmd.OutOrStdout())
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "TOML config file")
	pf.StringVarP(&flagCfg.Server, "server", "s", "", "interaction server host or URL (default: random public server)")
	pf.StringVarP(&flagCfg.Token, "token", "t", "", "authentication token for protected servers")
	pf.StringVar(&flagCfg.AuthScheme, "auth-scheme", flagCfg.AuthScheme, "authorization header form: simple or bearer")
	pf.IntVar(&flagCfg.KeySize, "key-size", flagCfg.KeySize, "RSA key size in bits")
	pf.DurationVar(&flagCfg.Timeout, "timeout", flagCfg.Timeout, "per-request timeout")
	pf.BoolVar(&flagCfg.VerifyTLS, "verify-tls", false, "verify the server TLS certificate")
	pf.StringVar(&flagCfg.Proxy, "proxy", "", "proxy URL (http, https or socks5)")
	pf.StringVar(&flagCfg.DNSOverride, "dns-override", "", "IP address to connect to instead of resolving the server")
	pf.BoolVar(&rawLogs, "raw-logs", false, "print decrypted interactions without parsing")
	pf.IntVar(&flagCfg.SubdomainLength, "subdomain-length", flagCfg.SubdomainLength, "generated subdomain length")
	pf.IntVar(&flagCfg.CorrelationLength, "correlation-length", flagCfg.CorrelationLength, "correlation id length")
	pf.DurationVar(&flagCfg.PollInterval, "poll-interval", flagCfg.PollInterval, "time between polls")
	pf.StringVar(&flagCfg.SessionFile, "session-file", "", "encrypted file to save and resume the session")
	pf.StringVarP(&flagCfg.Passphrase, "passphrase", "p", "", "passphrase protecting --session-file")
	pf.StringVar(&flagCfg.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	root.AddCommand(runCmd(), pollCmd(), deregisterCmd(), serversCmd())
	return root.Execute()
}

// applyFlags copies every flag the user set over cfg.
func applyFlags(fs *pflag.FlagSet, cfg *app.Config) {
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("server", func() { cfg.Server = flagCfg.Server })
	set("token", func() { cfg.Token = flagCfg.Token })
	set("auth-scheme", func() { cfg.AuthScheme = flagCfg.AuthScheme })
	set("key-size", func() { cfg.KeySize = flagCfg.KeySize })
	set("timeout", func() { cfg.Timeout = flagCfg.Timeout })
	set("verify-tls", func() { cfg.VerifyTLS = flagCfg.VerifyTLS })
	set("proxy", func() { cfg.Proxy = flagCfg.Proxy })
	set("dns-override", func() { cfg.DNSOverride = flagCfg.DNSOverride })
	set("raw-logs", func() { cfg.ParseLogs = !rawLogs })
	set("subdomain-length", func() { cfg.SubdomainLength = flagCfg.SubdomainLength })
	set("correlation-length", func() { cfg.CorrelationLength = flagCfg.CorrelationLength })
	set("poll-interval", func() { cfg.PollInterval = flagCfg.PollInterval })
	set("session-file", func() { cfg.SessionFile = flagCfg.SessionFile })
	set("passphrase", func() { cfg.Passphrase = flagCfg.Passphrase })
	set("metrics-addr", func() { cfg.MetricsAddr = flagCfg.MetricsAddr })
}
