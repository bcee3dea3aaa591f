//go:build js && wasm

package main

import (
	"encoding/json"
	"strings"
	"syscall/js"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/engine"
	"github.com/inamate/canvas/internal/geom"
	"github.com/inamate/canvas/internal/session"
)

var eng *engine.Engine

func main() {
	eng = engine.New()

	canvasEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	canvasEngine.Set("apply", js.FuncOf(apply))
	canvasEngine.Set("importData", js.FuncOf(importData))
	canvasEngine.Set("loadSample", js.FuncOf(loadSample))

	// --- Queries (frontend ← engine) ---
	canvasEngine.Set("getState", js.FuncOf(getState))
	canvasEngine.Set("exportData", js.FuncOf(exportData))
	canvasEngine.Set("hitTest", js.FuncOf(hitTest))
	canvasEngine.Set("screenToWorld", js.FuncOf(screenToWorld))
	canvasEngine.Set("subscribe", js.FuncOf(subscribe))

	js.Global().Set("canvasEngine", canvasEngine)
	js.Global().Set("canvasWasmReady", js.ValueOf(true))

	select {}
}

func errorResult(err error) any {
	return js.ValueOf(map[string]any{"error": err.Error()})
}

func okResult() any {
	return js.ValueOf(map[string]any{"ok": true})
}

func toJSON(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult(err)
	}
	return js.ValueOf(string(data))
}

// apply takes one command as JSON, the same shape the websocket carries.
func apply(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "missing command JSON"})
	}
	var cmd session.Command
	if err := json.Unmarshal([]byte(args[0].String()), &cmd); err != nil {
		return errorResult(err)
	}

	var err error
	eng.Transaction(func() {
		err = session.Apply(eng, cmd)
	})
	if err != nil {
		return errorResult(err)
	}
	return okResult()
}

func importData(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "missing document JSON"})
	}
	env, err := document.Decode(strings.NewReader(args[0].String()))
	if err != nil {
		return errorResult(err)
	}
	eng.ImportData(*env)
	return okResult()
}

func loadSample(this js.Value, args []js.Value) any {
	eng.ImportData(*document.NewSampleEnvelope())
	return okResult()
}

func getState(this js.Value, args []js.Value) any {
	return toJSON(eng.State())
}

func exportData(this js.Value, args []js.Value) any {
	return toJSON(eng.ExportData())
}

func hitTest(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func screenToWorld(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return nil
	}
	p := eng.ScreenToWorld(geom.Point{X: args[0].Float(), Y: args[1].Float()})
	return js.ValueOf(map[string]any{"x": p.X, "y": p.Y})
}

// subscribe calls the callback after every change and returns a function
// that removes it.
func subscribe(this js.Value, args []js.Value) any {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		return nil
	}
	cb := args[0]
	unsubscribe := eng.Subscribe(func() { cb.Invoke() })

	var release js.Func
	release = js.FuncOf(func(this js.Value, args []js.Value) any {
		unsubscribe()
		release.Release()
		return nil
	})
	return release
}
