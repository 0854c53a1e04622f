//go:build js && wasm
// +build js,wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/himanishpuri/SacraMusic/pkg/sacramusic/chords"
)

// Error codes returned to JavaScript
const (
	ErrorNone = iota
	ErrorInvalidArgs
)

// transposeBlock(text, mode, offset) renders a text block.
// Returns: {error: number, data: [{text, isChordLine}] | string}
func transposeBlock(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return makeErrorResponse(ErrorInvalidArgs, "Expected 3 arguments: text, mode, offset")
	}
	if args[0].Type() != js.TypeString {
		return makeErrorResponse(ErrorInvalidArgs, "text must be a string")
	}
	if args[1].Type() != js.TypeString {
		return makeErrorResponse(ErrorInvalidArgs, "mode must be a string")
	}
	if args[2].Type() != js.TypeNumber {
		return makeErrorResponse(ErrorInvalidArgs, "offset must be a number")
	}

	mode, ok := chords.ParseMode(args[1].String())
	if !ok {
		return makeErrorResponse(ErrorInvalidArgs, fmt.Sprintf("Unknown mode: %q", args[1].String()))
	}

	lines := chords.TransposeBlock(args[0].String(), mode, args[2].Int())

	arr := js.Global().Get("Array").New(len(lines))
	for i, l := range lines {
		obj := js.Global().Get("Object").New()
		obj.Set("text", l.Text)
		obj.Set("isChordLine", l.IsChord)
		arr.SetIndex(i, obj)
	}
	return makeResponse(arr)
}

// transposeChord(chord, steps) transposes a single chord symbol.
// Returns: {error: number, data: string}
func transposeChord(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeErrorResponse(ErrorInvalidArgs, "Expected 2 arguments: chord, steps")
	}
	if args[0].Type() != js.TypeString {
		return makeErrorResponse(ErrorInvalidArgs, "chord must be a string")
	}
	if args[1].Type() != js.TypeNumber {
		return makeErrorResponse(ErrorInvalidArgs, "steps must be a number")
	}
	return makeResponse(chords.TransposeChord(args[0].String(), args[1].Int()))
}

// transposeKey(key, offset) transposes a song key such as "Am".
// Returns: {error: number, data: string}
func transposeKey(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeErrorResponse(ErrorInvalidArgs, "Expected 2 arguments: key, offset")
	}
	if args[0].Type() != js.TypeString {
		return makeErrorResponse(ErrorInvalidArgs, "key must be a string")
	}
	if args[1].Type() != js.TypeNumber {
		return makeErrorResponse(ErrorInvalidArgs, "offset must be a number")
	}
	return makeResponse(chords.TransposeKey(args[0].String(), args[1].Int()))
}

func makeResponse(data interface{}) js.Value {
	result := js.Global().Get("Object").New()
	result.Set("error", ErrorNone)
	result.Set("data", data)
	return result
}

func makeErrorResponse(errorCode int, message string) js.Value {
	result := js.Global().Get("Object").New()
	result.Set("error", errorCode)
	result.Set("data", message)
	return result
}

func main() {
	console := js.Global().Get("console")

	done := make(chan struct{})

	js.Global().Set("transposeBlock", js.FuncOf(transposeBlock))
	js.Global().Set("transposeChord", js.FuncOf(transposeChord))
	js.Global().Set("transposeKey", js.FuncOf(transposeKey))

	window := js.Global().Get("window")
	if !window.IsUndefined() {
		eventInit := js.Global().Get("Object").New()
		event := js.Global().Get("CustomEvent").New("wasmReady", eventInit)
		window.Call("dispatchEvent", event)
	}

	if !console.IsUndefined() {
		console.Call("log", "SacraMusic chord engine loaded")
	}

	<-done
}
