// The simulator runs the full pipeline without hardware: it seeds a generated
// skin on disk, replays the demo input script, writes composed frames as PNG
// files, and serves the control-panel API plus a /sim/v1/inject endpoint for
// driving the view by hand.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/openpad/padview/internal/diag"
	"github.com/openpad/padview/internal/input"
	"github.com/openpad/padview/internal/prefs"
	"github.com/openpad/padview/internal/render"
	"github.com/openpad/padview/internal/skin"
	"github.com/openpad/padview/internal/view"
	"github.com/openpad/padview/internal/web"
)

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	workRoot := flag.String("root", "/tmp/padview-sim", "working directory for seeded skins, prefs and frames")
	rate := flag.Int("rate", 30, "frames per second")
	every := flag.Int("every", 15, "write every Nth frame as a PNG")
	source := flag.String("source", "sim-xbox-pad", "source identifier used by the demo script")
	noScript := flag.Bool("no-script", false, "skip the demo script; drive the view via /sim/v1/inject only")
	flag.Parse()

	root := filepath.Clean(*workRoot)
	skinsDir := filepath.Join(root, "skins")
	framesDir := filepath.Join(root, "frames")

	if err := seedSkin(skinsDir, seededSkinName); err != nil {
		fmt.Println("skin seed error:", err)
		os.Exit(2)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink := diag.NewWriterSink(os.Stdout)

	store, err := prefs.Open(filepath.Join(root, "prefs.json"))
	if err != nil {
		fmt.Println("prefs error:", err)
		os.Exit(2)
	}

	registry := skin.NewRegistry(skin.DirLoader{Root: skinsDir}, sink)
	loop := render.NewLoop(*rate, sink)
	orch := view.New(registry, store, loop, view.Resolution{
		Match:    "xbox",
		Fallback: seededSkinName,
		Default:  seededSkinName,
	}, sink)

	comp, err := render.NewCompositor("")
	if err != nil {
		fmt.Println("compositor error:", err)
		os.Exit(2)
	}

	presenter := render.NewPNGPresenter(framesDir, *every, sink)
	if err := presenter.Start(processCtx); err != nil {
		fmt.Println("presenter error:", err)
		os.Exit(2)
	}
	defer presenter.Stop()

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode})
	mux := web.NewMux(web.APIConfig{
		Prefs:    store,
		Registry: registry,
		View:     orch,
		PanelURL: "http://" + displayAddr(*listenAddr),
	})
	registerSimEndpoints(mux, orch)
	server.Handler = mux
	if err := server.Start(processCtx); err != nil {
		fmt.Println("server start error:", err)
		os.Exit(1)
	}
	defer server.Stop()

	fmt.Println("padview simulator listening on", server.Addr)
	fmt.Println("Frames:", framesDir)
	fmt.Println("API: http://" + displayAddr(server.Addr) + "/api/v1/")

	if !*noScript {
		script := input.DemoScript(0, input.SourceID(*source))
		go script.Run(processCtx, orch.Submit)
	}

	loop.Run(processCtx, orch, comp, presenter)
	fmt.Println("frames written:", presenter.Written())
}

func displayAddr(addr string) string {
	// Best-effort for display; don't attempt full URL parsing here.
	if addr == "" {
		return "127.0.0.1:8080"
	}
	if addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	return addr
}
