package main

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/openpad/padview/internal/input"
	"github.com/openpad/padview/internal/view"
)

// registerSimEndpoints adds the simulator-only control surface on top of the
// regular API mux.
func registerSimEndpoints(mux *http.ServeMux, orch *view.Orchestrator) {
	mux.HandleFunc("/sim/v1/inject", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			writeSimJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_body"})
			return
		}
		batch, ok := parseInjectBatch(body)
		if !ok {
			writeSimJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_batch"})
			return
		}
		orch.Submit(batch)
		writeSimJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
}

// parseInjectBatch decodes one source change:
//
//	{"slot": 0, "source": "sim-xbox-pad",
//	 "sticks": {"left": {"active": true, "pressed": true, "x": 0.5, "y": 0.5}},
//	 "buttons": {"dpad": {"up": 1}}}
//
// "pressed" is tri-state; leaving it out keeps the previous press state.
func parseInjectBatch(body []byte) (input.Batch, bool) {
	root := gjson.ParseBytes(body)
	if !root.IsObject() || !root.Get("source").Exists() {
		return nil, false
	}

	change := input.SourceChange{Source: input.SourceID(root.Get("source").String())}

	if sticks := root.Get("sticks"); sticks.IsObject() {
		change.Sticks = make(map[string]input.StickChange)
		sticks.ForEach(func(k, v gjson.Result) bool {
			sc := input.StickChange{
				Active: v.Get("active").Bool(),
				X:      v.Get("x").Float(),
				Y:      v.Get("y").Float(),
				DX:     v.Get("dx").Float(),
				DY:     v.Get("dy").Float(),
			}
			if p := v.Get("pressed"); p.Exists() {
				sc.Pressed = input.Bool(p.Bool())
			}
			change.Sticks[k.String()] = sc
			return true
		})
	}

	if buttons := root.Get("buttons"); buttons.IsObject() {
		change.Buttons = make(map[string]map[string]float64)
		buttons.ForEach(func(g, group gjson.Result) bool {
			values := make(map[string]float64)
			group.ForEach(func(k, v gjson.Result) bool {
				values[k.String()] = v.Float()
				return true
			})
			change.Buttons[g.String()] = values
			return true
		})
	}

	return input.Batch{int(root.Get("slot").Int()): change}, true
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
