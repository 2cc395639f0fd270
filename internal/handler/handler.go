package handler

import (
	"time"

	"vocabook/internal/config"
	"vocabook/internal/logger"
	"vocabook/internal/middleware"
	"vocabook/internal/repository"
	"vocabook/internal/repository/textfile"
	"vocabook/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const targetHelp = `A target names one vocabulary file:
  personal:<name>   a personal list under <data-dir>/<user>/vocas
  note:<name>       a mistake note under <data-dir>/<user>/notes
  public            the shared list <data-dir>/public/vocas/publics.txt
  favorites         the favorites of the user
or the path of one of those files.`

// Handler wires the command line to the services
type Handler struct {
	v          *viper.Viper
	configFile string

	cfg         *config.Config
	layout      config.Layout
	files       repository.FileRepository
	vocab       *service.VocabularyService
	ledger      *service.LedgerService
	sync        *service.SyncService
	consistency *service.ConsistencyService
	logger      *zap.Logger
	now         func() time.Time
}

// NewRootCmd builds the voca command tree
func NewRootCmd() *cobra.Command {
	h := &Handler{
		v:      viper.New(),
		logger: zap.NewNop(),
		now:    time.Now,
	}

	cmd := &cobra.Command{
		Use:               "voca",
		Short:             "Word lists with favorites kept in sync",
		Long:              "voca manages personal word lists, mistake notes and the shared public list,\nkeeping the favorites of a user consistent across all of them.",
		SilenceUsage:      true,
		PersistentPreRunE: h.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = h.logger.Sync()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&h.configFile, "config", "", "config file (default ./voca.yaml)")
	flags.String("data-dir", "", "root directory of the vocabulary files (default res)")
	flags.String("user", "", "user whose files are managed")
	flags.String("log-level", "", "log level: debug, info, warn or error (default info)")
	flags.String("output", "", "output format: text or yaml (default text)")
	_ = h.v.BindPFlag("data_dir", flags.Lookup("data-dir"))
	_ = h.v.BindPFlag("user", flags.Lookup("user"))
	_ = h.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = h.v.BindPFlag("output", flags.Lookup("output"))

	cmd.AddCommand(h.newVersionCmd())
	cmd.AddCommand(h.newListCmd())
	cmd.AddCommand(h.newAddCmd())
	cmd.AddCommand(h.newRemoveCmd())
	cmd.AddCommand(h.newEditCmd())
	cmd.AddCommand(h.newSearchCmd())
	cmd.AddCommand(h.newFavCmd())
	cmd.AddCommand(h.newUnfavCmd())
	cmd.AddCommand(h.newFavoritesCmd())
	cmd.AddCommand(h.newWhereCmd())
	cmd.AddCommand(h.newFilesCmd())
	cmd.AddCommand(h.newDoctorCmd())
	return cmd
}

// setup loads configuration and builds the services for the command about to run
func (h *Handler) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(h.v, h.configFile)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	h.init(cfg, textfile.NewFileRepo(), log)
	h.logger.Debug("Configuration loaded",
		zap.String("data_dir", cfg.DataDir),
		zap.String("user", cfg.User),
	)
	return nil
}

func (h *Handler) init(cfg *config.Config, files repository.FileRepository, log *zap.Logger) {
	h.cfg = cfg
	h.layout = cfg.Layout()
	h.files = files
	h.logger = log

	h.vocab = service.NewVocabularyService(files, log)
	h.ledger = service.NewLedgerService(h.vocab, h.layout.LedgerPath(), log)
	h.sync = service.NewSyncService(h.vocab, h.ledger, files, h.layout.ScanRoots(), log)
	h.consistency = service.NewConsistencyService(h.sync, h.ledger, log)
}

// withWorkspace runs next once the user's directories are ready
func (h *Handler) withWorkspace(next middleware.HandlerFunc) middleware.HandlerFunc {
	return middleware.Workspace(
		func() config.Layout { return h.layout },
		func() *zap.Logger { return h.logger },
	)(next)
}

func (h *Handler) wantsYAML() bool {
	return h.cfg != nil && h.cfg.Output == "yaml"
}
