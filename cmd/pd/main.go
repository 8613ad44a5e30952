package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"
	"golang.org/x/term"

	"github.com/vanderheijden86/panedock/pkg/analysis"
	"github.com/vanderheijden86/panedock/pkg/config"
	"github.com/vanderheijden86/panedock/pkg/dock"
	"github.com/vanderheijden86/panedock/pkg/model"
	"github.com/vanderheijden86/panedock/pkg/store"
	"github.com/vanderheijden86/panedock/pkg/ui"
	"github.com/vanderheijden86/panedock/pkg/validate"
	"github.com/vanderheijden86/panedock/pkg/watch"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	layoutFlag := flag.String("layout", "", "Layout file path (overrides .panedock/config.yaml)")
	validateFlag := flag.Bool("validate", false, "Validate the layout file and exit (exit codes: 0=valid, 1=invalid)")
	dump := flag.Bool("dump", false, "Print the layout tree as text and exit")
	stats := flag.Bool("stats", false, "Print layout statistics as JSON and exit")
	exportJSON := flag.Bool("export-json", false, "Print the layout document as JSON and exit")
	snapshot := flag.String("snapshot", "", "Save the current layout as a named snapshot and exit")
	restore := flag.String("restore", "", "Restore a named snapshot into the layout file and exit")
	snapshots := flag.Bool("snapshots", false, "List stored snapshots and exit")
	deleteSnap := flag.String("delete-snapshot", "", "Delete a named snapshot and exit")
	watchFlag := flag.Bool("watch", true, "Reload the TUI when the layout file changes on disk")
	flag.Parse()

	if *help {
		fmt.Println("Usage: pd [options]")
		fmt.Println("\nA panel layout inspector. Without flags it opens the interactive TUI.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	cfg, root := config.LoadOrDefault()
	layoutPath := cfg.LayoutFilePath(root)
	if *layoutFlag != "" {
		layoutPath = *layoutFlag
	}

	manager := dock.NewManager()
	manager.SetMinPanelSize(cfg.MinPanelSize)
	loaded := true
	if _, err := manager.LoadFile(layoutPath); err != nil {
		if !errors.Is(err, dock.ErrIO) {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", layoutPath, err)
			os.Exit(1)
		}
		// Missing file: start empty.
		loaded = false
	}

	switch {
	case *validateFlag:
		runValidate(manager, cfg)
	case *dump:
		fmt.Println(manager.DumpTree())
		os.Exit(0)
	case *stats:
		runStats(manager)
	case *exportJSON:
		runExport(manager)
	case *snapshot != "":
		runSnapshotSave(manager, cfg, root, *snapshot, loaded)
	case *restore != "":
		runSnapshotRestore(manager, cfg, root, *restore, layoutPath)
	case *snapshots:
		runSnapshotList(cfg, root)
	case *deleteSnap != "":
		runSnapshotDelete(cfg, root, *deleteSnap)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal.")
		fmt.Fprintln(os.Stderr, "Use --dump, --stats or --export-json for non-interactive output.")
		os.Exit(1)
	}

	m := ui.NewModel(manager, layoutPath)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if *watchFlag {
		if w, err := watch.New(layoutPath); err == nil && w.Start() == nil {
			defer w.Stop()
			go func() {
				for range w.Events() {
					p.Send(ui.ExternalChangeMsg{})
				}
			}()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running inspector: %v\n", err)
		os.Exit(1)
	}
}

func runValidate(manager *dock.Manager, cfg config.Config) {
	limits := validate.Limits{MaxDepth: cfg.Validator.MaxDepth, MaxNodes: cfg.Validator.MaxNodes}
	result := validate.TreeWithLimits(manager.Root(), limits)

	for _, e := range result.Errors {
		fmt.Printf("error: %s\n", e)
	}
	for _, w := range result.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	if !result.IsValid {
		os.Exit(1)
	}
	fmt.Println("layout valid")
	os.Exit(0)
}

func runStats(manager *dock.Manager) {
	output := struct {
		Stats    analysis.Stats `json:"stats"`
		Topology string         `json:"topology"`
	}{
		Stats:    analysis.TreeStats(manager.Root()),
		Topology: "consistent",
	}
	if err := analysis.VerifyTopology(manager.Root()); err != nil {
		output.Topology = err.Error()
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding stats: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func runExport(manager *dock.Manager) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(manager.SaveLayout()); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding layout: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func openStore(cfg config.Config, root string) *store.Store {
	s, err := store.Open(cfg.SnapshotDBPath(root))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening snapshot store: %v\n", err)
		os.Exit(1)
	}
	return s
}

func runSnapshotSave(manager *dock.Manager, cfg config.Config, root, name string, loaded bool) {
	if !loaded {
		fmt.Fprintln(os.Stderr, "Error: no layout file to snapshot.")
		os.Exit(1)
	}
	s := openStore(cfg, root)
	defer s.Close()

	data, err := json.MarshalIndent(manager.SaveLayout(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding layout: %v\n", err)
		os.Exit(1)
	}
	if err := s.Save(name, data); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving snapshot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved snapshot %q.\n", name)
	os.Exit(0)
}

func runSnapshotRestore(manager *dock.Manager, cfg config.Config, root, name, layoutPath string) {
	s := openStore(cfg, root)
	defer s.Close()

	data, err := s.Load(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading snapshot: %v\n", err)
		os.Exit(1)
	}

	var layout model.Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing snapshot %q: %v\n", name, err)
		os.Exit(1)
	}
	if _, err := manager.LoadLayout(&layout); err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring snapshot %q: %v\n", name, err)
		os.Exit(1)
	}
	if err := manager.SaveFile(layoutPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", layoutPath, err)
		os.Exit(1)
	}
	fmt.Printf("Restored snapshot %q to %s.\n", name, layoutPath)
	os.Exit(0)
}

func runSnapshotList(cfg config.Config, root string) {
	s := openStore(cfg, root)
	defer s.Close()

	snaps, err := s.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing snapshots: %v\n", err)
		os.Exit(1)
	}
	if len(snaps) == 0 {
		fmt.Println("No snapshots stored.")
		os.Exit(0)
	}
	for _, snap := range snaps {
		fmt.Printf("%s\t%s\n", snap.CreatedAt.Local().Format("2006-01-02 15:04"), snap.Name)
	}
	os.Exit(0)
}

func runSnapshotDelete(cfg config.Config, root, name string) {
	s := openStore(cfg, root)
	defer s.Close()

	if err := s.Delete(name); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting snapshot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted snapshot %q.\n", name)
	os.Exit(0)
}
