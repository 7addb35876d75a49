package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/lnk/internal/exporter"
	"github.com/nikbrunner/lnk/internal/importer"
	"github.com/nikbrunner/lnk/internal/model"
	"github.com/nikbrunner/lnk/internal/pagination"
	"github.com/nikbrunner/lnk/internal/picker"
	"github.com/nikbrunner/lnk/internal/preview"
	"github.com/nikbrunner/lnk/internal/search"
	"github.com/nikbrunner/lnk/internal/storage"
	"github.com/nikbrunner/lnk/internal/suggest"
	"github.com/nikbrunner/lnk/internal/tui"
	"github.com/sirupsen/logrus"
)

// CLI is the command line of lnk. Without a subcommand it opens the TUI, or
// searches when words are given.
type CLI struct {
	Config  string `short:"c" help:"Configuration file path (.json, .yaml)" type:"path"`
	Verbose bool   `short:"v" help:"Log at debug level"`

	Open    OpenCmd    `cmd:"" default:"withargs" help:"Open the TUI, or search and open when a query is given"`
	Import  ImportCmd  `cmd:"" help:"Import pages from bookmark HTML"`
	Export  ExportCmd  `cmd:"" help:"Export links and pages to bookmark HTML"`
	Summary SummaryCmd `cmd:"" help:"Print a pagination summary"`
	Help    HelpCmd    `cmd:"" help:"Show this help"`
}

const description = `Terminal link editor.

List keys: j/k move, n/p page, gg/G top/bottom, a add, e/enter edit,
d delete, Y copy URL, ? help, q quit.

Editor keys: enter submit or pick, up/down suggestions, tab next control,
e edit, u unlink, y copy URL, 1-9 toggle setting, esc cancel.

Data lives in ~/.config/lnk (lnk.json or lnk.db, config.json, lnk.log).`

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("lnk"),
		kong.Description(description),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(cli))
}

// env bundles what the storage-backed commands need.
type env struct {
	config  *storage.Config
	storage storage.Storage
	store   *model.Store
	log     *logrus.Logger
	closers []io.Closer
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i].Close()
	}
}

// setup loads config, opens the log file and loads the store.
func (c *CLI) setup() (*env, error) {
	configPath := c.Config
	if configPath == "" {
		var err error
		configPath, err = storage.DefaultConfigFilePath()
		if err != nil {
			return nil, fmt.Errorf("config path: %w", err)
		}
	}

	config, err := storage.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	e := &env{config: config}

	level := config.LogLevel
	if c.Verbose {
		level = "debug"
	}
	e.log = newLogger(level)
	if dir, err := storage.DataDir(); err == nil {
		if f, err := openLogFile(dir); err == nil {
			e.log.SetOutput(f)
			e.closers = append(e.closers, f)
		}
	}

	e.storage, err = storage.OpenStorage()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if closer, ok := e.storage.(io.Closer); ok {
		e.closers = append(e.closers, closer)
	}

	e.store, err = e.storage.Load()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load links: %w", err)
	}

	e.log.WithFields(logrus.Fields{
		"config": configPath,
		"links":  len(e.store.Links),
		"pages":  len(e.store.Pages),
	}).Debug("store loaded")

	return e, nil
}

// newLogger returns a JSON logger that discards output until a file is set.
func newLogger(level string) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(io.Discard)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "lnk.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// OpenCmd runs the TUI, or the quick search when a query is given.
type OpenCmd struct {
	Query []string `arg:"" optional:"" help:"Search pages and links"`
}

func (o *OpenCmd) Run(cli *CLI) error {
	e, err := cli.setup()
	if err != nil {
		return err
	}
	defer e.Close()

	if len(o.Query) > 0 {
		return runQuickSearch(e, strings.Join(o.Query, " "))
	}
	return runTUI(e)
}

// runTUI runs the full interactive TUI.
func runTUI(e *env) error {
	provider := suggest.NewLocalProvider(suggest.LocalProviderParams{
		Store:   e.store,
		SiteURL: e.config.SiteURL,
		Saver:   e.storage,
		Logger:  e.log,
	})

	var previews preview.Fetcher
	if e.config.HasRichPreviews {
		previews = preview.NewHTTPFetcher(preview.HTTPFetcherParams{Logger: e.log})
	}

	app := tui.NewApp(tui.AppParams{
		Store:       e.store,
		Storage:     e.storage,
		Suggestions: provider,
		Previews:    previews,
		Config:      e.config,
		Logger:      e.log,
	})

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		e.log.WithError(err).Error("tui exited")
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}

// runQuickSearch fuzzy-searches pages and links and opens the selection.
func runQuickSearch(e *env, query string) error {
	results := search.FuzzySearchPages(search.Catalogue(e.store), query)
	if len(results) == 0 {
		fmt.Printf("Nothing found for '%s'\n", query)
		return nil
	}

	var selected *model.Page

	if len(results) == 1 {
		selected = results[0].Page
	} else {
		finalModel, err := tea.NewProgram(picker.New(results, query)).Run()
		if err != nil {
			return fmt.Errorf("run picker: %w", err)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return nil
		}
		selected = finalPicker.SelectedPage()
	}

	if selected == nil {
		return nil
	}

	fmt.Printf("Opening: %s\n", selected.URL)
	e.log.WithField("url", selected.URL).Info("opening")
	openURL(selected.URL)
	return nil
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}

// ImportCmd merges pages from a bookmark file into the catalogue.
type ImportCmd struct {
	File string `arg:"" help:"Netscape bookmark HTML file" type:"existingfile"`
}

func (i *ImportCmd) Run(cli *CLI) error {
	e, err := cli.setup()
	if err != nil {
		return err
	}
	defer e.Close()

	file, err := os.Open(i.File)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	pages, err := importer.ParseHTMLPages(file)
	if err != nil {
		return fmt.Errorf("parse HTML: %w", err)
	}

	added, skipped := e.store.ImportMerge(pages)

	if err := e.storage.Save(e.store); err != nil {
		return fmt.Errorf("save links: %w", err)
	}

	e.log.WithFields(logrus.Fields{"added": added, "skipped": skipped, "file": i.File}).Info("import finished")

	fmt.Printf("Imported %d pages", added)
	if skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
	return nil
}

// ExportCmd writes links and pages as bookmark HTML.
type ExportCmd struct {
	Path string `arg:"" optional:"" help:"Output file (default ~/Downloads/lnk-export-DATE.html)"`
}

func (x *ExportCmd) Run(cli *CLI) error {
	outputPath := x.Path
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			return fmt.Errorf("default export path: %w", err)
		}
	}

	e, err := cli.setup()
	if err != nil {
		return err
	}
	defer e.Close()

	html := exporter.ExportHTML(e.store)
	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	fmt.Printf("Exported %d links, %d pages to %s\n", len(e.store.Links), len(e.store.Pages), outputPath)
	return nil
}

// SummaryCmd prints the pagination summary line. It needs no storage.
type SummaryCmd struct {
	Page    int    `arg:"" help:"Current page (1-based)"`
	PerPage int    `arg:"" help:"Results per page"`
	Found   int    `arg:"" help:"Total results"`
	Display string `arg:"" optional:"" default:"total-results" enum:"total-results,range-display" help:"Summary style"`
}

func (s *SummaryCmd) Run() error {
	fmt.Println(pagination.Format(pagination.Params{
		CurrentPage: s.Page,
		PerPage:     s.PerPage,
		FoundPosts:  s.Found,
		DisplayType: pagination.ParseDisplayType(s.Display),
	}))
	return nil
}

// HelpCmd prints usage, like --help.
type HelpCmd struct{}

func (h *HelpCmd) Run(ctx *kong.Context) error {
	return ctx.PrintUsage(false)
}
