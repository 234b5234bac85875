package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helper-labs/helper-portal/internal/apiclient"
	"github.com/helper-labs/helper-portal/internal/config"
	"github.com/helper-labs/helper-portal/internal/logging"
	"github.com/helper-labs/helper-portal/internal/service"
	"github.com/helper-labs/helper-portal/internal/session"
	"github.com/helper-labs/helper-portal/internal/storage/bolt"
	"github.com/helper-labs/helper-portal/internal/tui"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd runs the interactive portal.
var rootCmd = &cobra.Command{
	Use:   "helper-portal",
	Short: "Terminal client for the government policy helper portal",
	Long: `helper-portal browses the notice board, the Q&A board and the policy
chatbot of a helper portal API.

Run without arguments to start the interactive interface. Use serve-dev to
run a local stand-in API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		// the interactive UI owns the terminal, so it logs to file
		logFile := ""
		if cmd == cmd.Root() {
			logFile = cfg.Log.File
		}
		logger, err = logging.New(cfg.Log.Level, logFile, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPortal(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveDevCmd)
	rootCmd.AddCommand(noticesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// portal is everything the client side needs, opened from cfg.
type portal struct {
	store    *bolt.ClientStore
	client   *apiclient.Client
	session  *session.Store
	services tui.Services
}

func openPortal(ctx context.Context) (*portal, error) {
	store, err := bolt.NewClientStore(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	jar, err := apiclient.NewPersistentJar(ctx, store, cfg.API.BaseURL, logger)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init cookie jar: %w", err)
	}
	client, err := apiclient.New(cfg.API.BaseURL, cfg.API.RequestTimeout,
		apiclient.WithJar(jar),
		apiclient.WithLogger(logger))
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init api client: %w", err)
	}
	sess := session.New(client, logger)
	return &portal{
		store:   store,
		client:  client,
		session: sess,
		services: tui.Services{
			Notices:  service.NewNoticeService(client, cfg, logger),
			Qna:      service.NewQnaService(client, cfg, logger),
			Policies: service.NewPolicyService(client, cfg, logger),
			Chat:     service.NewChatService(client, store, sess, logger),
			Auth:     service.NewAuthService(client, sess, logger),
			Session:  sess,
		},
	}, nil
}

func (p *portal) Close() error {
	return p.store.Close()
}

func runPortal(ctx context.Context) error {
	p, err := openPortal(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	model := tui.New(p.services, cfg, tui.WithLogger(logger))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	updates, cancel := p.session.Subscribe()
	defer cancel()
	go tui.ForwardSession(program, updates)

	logger.Info("portal started", zap.String("api", p.client.BaseURL()))
	_, err = program.Run()
	return err
}
