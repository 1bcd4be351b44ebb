package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/five82/crate/internal/catalog"
	"github.com/five82/crate/internal/config"
	"github.com/five82/crate/internal/loader"
	"github.com/five82/crate/internal/logging"
	"github.com/five82/crate/internal/prefs"
	"github.com/five82/crate/internal/ui"
)

// Options configure the crate application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/crate/prefs.toml
	BaseURL    string // overrides the configured catalog address
	List       bool   // print the catalog and exit
	AlbumID    string // print one album and exit
	Out        io.Writer
}

// Run boots crate until the context is cancelled or the user quits. When
// List or AlbumID is set, or Out is not a terminal, it prints instead.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if s := strings.TrimSpace(opts.BaseURL); s != "" {
		cfg.BaseURL = s
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	client, err := catalog.NewClient(cfg.BaseURL,
		catalog.WithTimeout(cfg.HTTP.Timeout),
		catalog.WithUserAgent(cfg.HTTP.UserAgent),
		catalog.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}
	logger.Info("crate starting", zap.String("base_url", client.BaseURL()))

	albums := loader.NewCatalog(client, loader.WithLogger(logger))
	detail := loader.NewDetail(client, loader.WithLogger(logger))

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if id := strings.TrimSpace(opts.AlbumID); id != "" {
		return printAlbum(ctx, out, detail, id)
	}
	if opts.List || !isTerminal(out) {
		return printCatalog(ctx, out, albums)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("load prefs failed", zap.Error(err))
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Catalog:   albums,
		Detail:    detail,
		Logger:    logger,
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
