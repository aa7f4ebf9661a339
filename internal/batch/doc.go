// Package batch applies a fixed pipeline of editing operations to many
// files in sequence.
//
// A pipeline is a JSON array of steps, each naming an operation and its
// parameters:
//
//	[
//	  {"op": "auto_enhance"},
//	  {"op": "resize", "params": {"width": 1200, "height": 800}}
//	]
//
// Pipelines are validated in full before any file is touched, so a typo in
// a step never leaves a run half done. Individual file failures are logged
// and recorded in the run summary without stopping the remaining files.
package batch
