package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/openpad/padview/internal/config"
	"github.com/openpad/padview/internal/diag"
	"github.com/openpad/padview/internal/input"
	"github.com/openpad/padview/internal/prefs"
	"github.com/openpad/padview/internal/render"
	"github.com/openpad/padview/internal/skin"
	"github.com/openpad/padview/internal/slot"
	"github.com/openpad/padview/internal/system"
	"github.com/openpad/padview/internal/view"
	"github.com/openpad/padview/internal/web"
)

func main() {
	fmt.Println("padview starting")

	// Flags
	configPath := flag.String("config", "padview.ini", "path to the INI config file")
	debug := flag.Bool("debug", false, "enable debug logging to ./padview-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via PADVIEW_STDIO_LOG")
	demoSource := flag.String("demo-source", "", "run the built-in demo input script with this source identifier")
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("PADVIEW_STDIO_LOG")
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	// Local file logger when debug enabled
	var sink diag.Sink = diag.NoopSink{}
	if *debug {
		f, err := os.OpenFile("./padview-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			sink = diag.NewWriterSink(f)
			sink.Logf("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	store, err := prefs.Open(cfg.Prefs.Path)
	if err != nil {
		fmt.Println("prefs error:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := skin.NewRegistry(skin.DirLoader{Root: cfg.Skins.Dir}, sink)
	loop := render.NewLoop(cfg.Display.FrameRate, sink)
	orch := view.New(registry, store, loop, view.Resolution{
		Match:    cfg.Skins.FallbackMatch,
		Fallback: cfg.Skins.FallbackSkin,
		Default:  cfg.Skins.DefaultSkin,
	}, sink)
	if *debug {
		orch.OnActivity = func(a slot.Activity) {
			sink.Logf("activity", "sticks=%d buttons=%d", len(a.Sticks), len(a.Buttons))
		}
	}

	comp, err := render.NewCompositor(cfg.Display.Font)
	if err != nil {
		fmt.Println("compositor error:", err)
		os.Exit(2)
	}

	presenter := render.NewFBPresenter(cfg.Display.Framebuffer, sink)
	if err := presenter.Start(ctx); err != nil {
		fmt.Println("framebuffer open error:", err)
		os.Exit(1)
	}
	defer presenter.Stop()

	system.EnterGraphics(sink)
	defer system.LeaveGraphics(sink)

	serverCfg, err := web.DefaultServerConfigFromEnv(cfg.Web.Listen)
	if err != nil {
		fmt.Println("web config error:", err)
		os.Exit(2)
	}
	server := web.NewHTTPServer(serverCfg)
	server.Handler = web.NewMux(web.APIConfig{
		Prefs:    store,
		Registry: registry,
		View:     orch,
		PanelURL: panelURL(serverCfg.ListenAddr),
	})
	if err := server.Start(ctx); err != nil {
		sink.Errorf("web", "server start failed: %v", err)
	} else {
		defer server.Stop()
	}

	// Device polling lives in a collaborating process that feeds Submit; the
	// optional demo script stands in for it during bring-up.
	if *demoSource != "" {
		script := input.DemoScript(0, input.SourceID(*demoSource))
		go script.Run(ctx, orch.Submit)
	}

	loop.Run(ctx, orch, comp, presenter)
}

// panelURL builds the address shown in the QR code. A bare ":port" listen
// address is qualified with the hostname so phones on the LAN can reach it.
func panelURL(listen string) string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	if len(listen) > 0 && listen[0] == ':' {
		return "http://" + host + listen
	}
	return "http://" + listen
}
