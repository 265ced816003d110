package web

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"strconv"

	"github.com/skip2/go-qrcode"
	"github.com/tidwall/gjson"

	"github.com/openpad/padview/internal/fade"
	"github.com/openpad/padview/internal/prefs"
	"github.com/openpad/padview/internal/skin"
	"github.com/openpad/padview/internal/view"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type fadeoutResponse struct {
	Checkpoints [][2]float64 `json:"checkpoints"`
	Duration    float64      `json:"duration"`
	Factors     []float64    `json:"factors"`
}

// APIConfig wires the API handlers to the running system.
type APIConfig struct {
	Prefs    *prefs.Store
	Registry *skin.Registry
	View     *view.Orchestrator
	PanelURL string
}

// NewMux builds the control-panel mux: /api/v1/* plus a minimal index page.
func NewMux(cfg APIConfig) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/mappings", func(w http.ResponseWriter, r *http.Request) { handleMappings(w, r, cfg) })
	mux.HandleFunc("/api/v1/fadeout", func(w http.ResponseWriter, r *http.Request) { handleFadeout(w, r, cfg) })
	mux.HandleFunc("/api/v1/skins", func(w http.ResponseWriter, r *http.Request) { handleSkins(w, r, cfg) })
	mux.HandleFunc("/api/v1/qr.png", func(w http.ResponseWriter, r *http.Request) { handleQR(w, r, cfg) })
	mux.HandleFunc("/", handleIndex)
	return mux
}

// handleMappings serves the source→skin table and accepts bulk replacement.
func handleMappings(w http.ResponseWriter, r *http.Request, cfg APIConfig) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, cfg.Prefs.Mappings())
	case http.MethodPut:
		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "bad_body", err.Error())
			return
		}
		root := gjson.ParseBytes(body)
		if !root.IsObject() {
			writeAPIError(w, http.StatusBadRequest, "bad_body", "expected an object of source → skin directory")
			return
		}
		mappings := make(map[string]string)
		bad := ""
		root.ForEach(func(k, v gjson.Result) bool {
			if !skin.IsDirnameOK(v.String()) {
				bad = v.String()
				return false
			}
			mappings[k.String()] = v.String()
			return true
		})
		if bad != "" {
			writeAPIError(w, http.StatusBadRequest, "bad_dirname", "invalid skin directory name "+strconv.Quote(bad))
			return
		}
		if err := cfg.Prefs.SetMappings(mappings); err != nil {
			writeAPIError(w, http.StatusInternalServerError, "persist_failed", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

// handleFadeout serves the fade policy and accepts updates, recomputing the
// per-frame factors through the orchestrator.
func handleFadeout(w http.ResponseWriter, r *http.Request, cfg APIConfig) {
	switch r.Method {
	case http.MethodGet:
		policy, factors := cfg.View.FadePolicy()
		writeJSON(w, http.StatusOK, toFadeoutResponse(policy, factors))
	case http.MethodPut:
		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "bad_body", err.Error())
			return
		}
		root := gjson.ParseBytes(body)
		var policy fade.Policy
		for _, cp := range root.Get("checkpoints").Array() {
			pair := cp.Array()
			if len(pair) != 2 {
				writeAPIError(w, http.StatusBadRequest, "bad_checkpoint", "checkpoints must be [seconds, opacity] pairs")
				return
			}
			policy.Checkpoints = append(policy.Checkpoints, fade.Checkpoint{After: pair[0].Float(), Opacity: pair[1].Float()})
		}
		policy.Duration = root.Get("duration").Float()
		if err := policy.Validate(); err != nil {
			writeAPIError(w, http.StatusBadRequest, "bad_policy", err.Error())
			return
		}
		cfg.View.SetFadePolicy(policy)
		newPolicy, factors := cfg.View.FadePolicy()
		writeJSON(w, http.StatusOK, toFadeoutResponse(newPolicy, factors))
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func toFadeoutResponse(policy fade.Policy, factors []float64) fadeoutResponse {
	resp := fadeoutResponse{Duration: policy.Duration, Factors: factors}
	for _, c := range policy.Checkpoints {
		resp.Checkpoints = append(resp.Checkpoints, [2]float64{c.After, c.Opacity})
	}
	return resp
}

func handleSkins(w http.ResponseWriter, r *http.Request, cfg APIConfig) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, cfg.Registry.Loaded())
}

// qrSizeMax caps the rendered code; anything larger is a typo, not a phone.
const qrSizeMax = 2048

// handleQR serves a QR code for the panel URL so the page can be opened from
// a phone while the framebuffer owns the local display.
func handleQR(w http.ResponseWriter, r *http.Request, cfg APIConfig) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if cfg.PanelURL == "" {
		writeAPIError(w, http.StatusInternalServerError, "qr_failed", "no panel URL configured")
		return
	}
	size := 256
	if raw := r.URL.Query().Get("size"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= qrSizeMax {
			size = parsed
		}
	}
	code, err := qrcode.New(cfg.PanelURL, qrcode.Medium)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "qr_failed", "could not build QR code")
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, code.Image(size)); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "qr_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

const indexPage = `<!doctype html>
<title>padview</title>
<h1>padview control panel</h1>
<ul>
<li>GET/PUT <a href="/api/v1/mappings">/api/v1/mappings</a></li>
<li>GET/PUT <a href="/api/v1/fadeout">/api/v1/fadeout</a></li>
<li>GET <a href="/api/v1/skins">/api/v1/skins</a></li>
<li><img src="/api/v1/qr.png?size=192" alt="panel QR"></li>
</ul>
`

func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, indexPage)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
