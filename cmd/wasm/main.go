//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/kittclouds/palladian/internal/store"
	"github.com/kittclouds/palladian/pkg/corpus"
	"github.com/kittclouds/palladian/pkg/docstore"
	"github.com/kittclouds/palladian/pkg/ner"
)

// Version info
const Version = "0.1.0"

// Global state
var tagger = ner.NewTagger(nil)
var docs = docstore.New()       // In-memory document store
var sqlStore *store.SQLiteStore // SQLite model store

func main() {
	fmt.Println("[Palladian] WASM Ready v" + Version)

	js.Global().Set("Palladian", js.ValueOf(map[string]interface{}{
		"version":   js.FuncOf(getVersion),
		"train":     js.FuncOf(train),
		"loadModel": js.FuncOf(loadModel),
		"modelJSON": js.FuncOf(modelJSON),
		"tag":       js.FuncOf(tag),
		// DocStore API
		"hydrateDocs": js.FuncOf(hydrateDocs),
		"upsertDoc":   js.FuncOf(upsertDoc),
		"removeDoc":   js.FuncOf(removeDoc),
		"docCount":    js.FuncOf(docCount),
		"annotateAll": js.FuncOf(annotateAll),
		// SQLite Store API
		"storeInit":   js.FuncOf(storeInit),
		"storeSave":   js.FuncOf(storeSave),
		"storeLoad":   js.FuncOf(storeLoad),
		"storeList":   js.FuncOf(storeList),
		"storeDelete": js.FuncOf(storeDelete),
		"storeExport": js.FuncOf(storeExport),
		"storeImport": js.FuncOf(storeImport),
	}))

	// Keep the module alive
	select {}
}

func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// =============================================================================
// Training and tagging
// =============================================================================

// train trains a model from column-format text and makes it the active one.
// Args: [columns string, settingsJSON string (optional), seeds string (optional)]
// Returns: Promise<JSON> with the model summary
func train(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("train requires 1+ args: columns, [settingsJSON], [seeds]")
	}
	columns := args[0].String()
	settings := ner.DefaultSettings(ner.English)
	if len(args) > 1 && args[1].String() != "" {
		if err := json.Unmarshal([]byte(args[1].String()), &settings); err != nil {
			return errorResult("invalid settings json: " + err.Error())
		}
	}
	seedText := ""
	if len(args) > 2 {
		seedText = args[2].String()
	}

	promise, resolve, reject := makePromise()
	go func() {
		docsIn, _, err := corpus.ReadColumn(strings.NewReader(columns), "wasm")
		if err != nil {
			reject.Invoke(errorResult(err.Error()))
			return
		}
		var seeds []corpus.Seed
		if seedText != "" {
			seeds, _, err = corpus.ReadSeeds(strings.NewReader(seedText), "wasm")
			if err != nil {
				reject.Invoke(errorResult(err.Error()))
				return
			}
		}
		trainer, err := ner.NewTrainer(settings)
		if err != nil {
			reject.Invoke(errorResult(err.Error()))
			return
		}
		model, err := trainer.Train(context.Background(), docsIn, seeds)
		if err != nil {
			reject.Invoke(errorResult(err.Error()))
			return
		}
		tagger.SetModel(model)
		resolve.Invoke(jsonResult(model.Summary()))
	}()
	return promise
}

// loadModel replaces the active model with a JSON model.
// Args: [modelJSON string]
func loadModel(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("loadModel requires 1 arg: modelJSON")
	}
	model := new(ner.Model)
	if err := json.Unmarshal([]byte(args[0].String()), model); err != nil {
		return errorResult("invalid model json: " + err.Error())
	}
	tagger.SetModel(model)
	return successResult("model loaded")
}

// modelJSON returns the active model as JSON.
func modelJSON(this js.Value, args []js.Value) interface{} {
	model := tagger.Model()
	if model == nil {
		return errorResult(ner.ErrModelNotLoaded.Error())
	}
	return jsonResult(model)
}

// tag annotates a text with the active model.
// Args: [text string]
// Returns: JSON array of {start, value, tag, categories}
func tag(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("tag requires 1 arg: text")
	}
	annotations, err := tagger.GetAnnotations(args[0].String())
	if err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(annotations)
}

// =============================================================================
// DocStore API
// =============================================================================

// hydrateDocs bulk-loads documents into the DocStore.
// Args: [docsJSON string] - Array of {id, text, version?}
func hydrateDocs(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("hydrateDocs requires 1 arg: docsJSON")
	}

	var input []struct {
		ID      string `json:"id"`
		Text    string `json:"text"`
		Version int64  `json:"version"`
	}
	if err := json.Unmarshal([]byte(args[0].String()), &input); err != nil {
		return errorResult("invalid docs json: " + err.Error())
	}

	list := make([]docstore.Document, len(input))
	for i, d := range input {
		list[i] = docstore.Document{ID: d.ID, Text: d.Text, Version: d.Version}
	}
	count := docs.Hydrate(list)
	return successResult(fmt.Sprintf("hydrated %d docs", count))
}

// upsertDoc adds or updates a single document.
// Args: [id string, text string, version int64 (optional)]
func upsertDoc(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("upsertDoc requires 2+ args: id, text, [version]")
	}
	var version int64
	if len(args) > 2 {
		version = int64(args[2].Int())
	}
	docs.Upsert(args[0].String(), args[1].String(), version)
	return successResult("upserted " + args[0].String())
}

// removeDoc deletes a document and its result.
// Args: [id string]
func removeDoc(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("removeDoc requires 1 arg: id")
	}
	docs.Remove(args[0].String())
	return successResult("removed " + args[0].String())
}

func docCount(this js.Value, args []js.Value) interface{} {
	return docs.Count()
}

// annotateAll tags every document in the DocStore.
// Args: [concurrency int (optional)]
// Returns: Promise<JSON> with {failed, results}
func annotateAll(this js.Value, args []js.Value) interface{} {
	concurrency := 0
	if len(args) > 0 {
		concurrency = args[0].Int()
	}

	promise, resolve, reject := makePromise()
	go func() {
		failed, err := ner.AnnotateAll(context.Background(), tagger, docs, concurrency)
		if err != nil {
			reject.Invoke(errorResult(err.Error()))
			return
		}
		type result struct {
			docstore.Result
			Error string `json:"error,omitempty"`
		}
		var out []result
		for _, r := range docs.Results() {
			res := result{Result: r}
			if r.Err != nil {
				res.Error = r.Err.Error()
			}
			out = append(out, res)
		}
		resolve.Invoke(jsonResult(map[string]interface{}{
			"failed":  failed,
			"results": out,
		}))
	}()
	return promise
}

// =============================================================================
// SQLite Store API
// =============================================================================

// storeInit initializes the SQLite store.
// Args: [] (uses in-memory database for WASM)
func storeInit(this js.Value, args []js.Value) interface{} {
	var err error
	sqlStore, err = store.NewSQLiteStore()
	if err != nil {
		return errorResult("failed to initialize SQLite store: " + err.Error())
	}
	return successResult("store initialized")
}

// storeSave saves the active model under a name.
// Args: [name string]
func storeSave(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("storeSave requires 1 arg: name")
	}
	if sqlStore == nil {
		return errorResult("store not initialized")
	}
	model := tagger.Model()
	if model == nil {
		return errorResult(ner.ErrModelNotLoaded.Error())
	}
	info, err := sqlStore.SaveModel(context.Background(), args[0].String(), model)
	if err != nil {
		return errorResult("save failed: " + err.Error())
	}
	return jsonResult(info)
}

// storeLoad makes a stored model the active one.
// Args: [name string]
func storeLoad(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("storeLoad requires 1 arg: name")
	}
	if sqlStore == nil {
		return errorResult("store not initialized")
	}
	model, err := sqlStore.LoadModel(context.Background(), args[0].String())
	if err != nil {
		return errorResult("load failed: " + err.Error())
	}
	tagger.SetModel(model)
	return successResult("loaded " + args[0].String())
}

func storeList(this js.Value, args []js.Value) interface{} {
	if sqlStore == nil {
		return errorResult("store not initialized")
	}
	models, err := sqlStore.ListModels(context.Background())
	if err != nil {
		return errorResult("list failed: " + err.Error())
	}
	if models == nil {
		models = []store.ModelInfo{}
	}
	return jsonResult(models)
}

// storeDelete removes a stored model.
// Args: [name string]
func storeDelete(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("storeDelete requires 1 arg: name")
	}
	if sqlStore == nil {
		return errorResult("store not initialized")
	}
	if err := sqlStore.DeleteModel(context.Background(), args[0].String()); err != nil {
		return errorResult("delete failed: " + err.Error())
	}
	return successResult("deleted " + args[0].String())
}

// storeExport serializes every stored model to a Uint8Array.
// Returns: Uint8Array of JSON bytes (for OPFS persistence)
func storeExport(this js.Value, args []js.Value) interface{} {
	if sqlStore == nil {
		return errorResult("store not initialized")
	}
	data, err := sqlStore.Export(context.Background())
	if err != nil {
		return errorResult("export failed: " + err.Error())
	}

	jsArray := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(jsArray, data)
	return jsArray
}

// storeImport restores the stored models from a Uint8Array.
// Args: [data Uint8Array]
func storeImport(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("storeImport requires 1 arg: data (Uint8Array)")
	}
	if sqlStore == nil {
		return errorResult("store not initialized")
	}

	length := args[0].Get("length").Int()
	data := make([]byte, length)
	js.CopyBytesToGo(data, args[0])

	if err := sqlStore.Import(context.Background(), data); err != nil {
		return errorResult("import failed: " + err.Error())
	}
	return successResult(fmt.Sprintf("imported %d bytes", length))
}

// =============================================================================
// Helpers
// =============================================================================

func jsonResult(v interface{}) interface{} {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return errorResult(err.Error())
	}
	return string(jsonBytes)
}

// Helper: Create error result
func errorResult(msg string) interface{} {
	result := map[string]interface{}{
		"error": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// Helper: Create success result
func successResult(msg string) interface{} {
	result := map[string]interface{}{
		"success": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// makePromise creates a JS Promise and returns it along with resolve/reject functions.
func makePromise() (promise js.Value, resolve js.Value, reject js.Value) {
	var resolveFn, rejectFn js.Value
	handler := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		resolveFn = args[0]
		rejectFn = args[1]
		return nil
	})
	defer handler.Release()

	promise = js.Global().Get("Promise").New(handler)
	return promise, resolveFn, rejectFn
}
