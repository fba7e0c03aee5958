// Package io provides JSON import and export for scaffold documents.
//
// # JSON Format
//
// A scaffold document has three required arrays and one optional array:
//
//	{
//	  "anchors": [
//	    {"id": "a1", "name": "a1", "layout": {"x": 0, "y": 0, "z": 0}}
//	  ],
//	  "wires": [
//	    {"id": "w_1", "source": "a1", "target": "a2"}
//	  ],
//	  "components": [
//	    {"id": "comp_0.0", "name": "Component at z=0.0",
//	     "anchors": ["a1"], "wires": [], "background": "slice_003"}
//	  ],
//	  "external": [
//	    {"id": "slice_003", "name": "slice_003.png", "path": "slice_003.png", "type": "image"}
//	  ]
//	}
//
// The "external" array is omitted when no component has a background.
//
// # Import
//
// Use [ImportJSON] to read a document from a file path, or [ReadJSON] to
// read from any io.Reader. A missing file is reported with code
// FILE_NOT_FOUND. Unknown fields are ignored so documents edited by the
// visualization tool can be read back.
//
// # Export
//
// Use [ExportJSON] to write a document to a file, or [WriteJSON] to write to
// any io.Writer. ExportJSON writes to a temporary file in the target
// directory and renames it into place, so a failed run never leaves a
// partially written document behind. Missing parent directories are
// created.
package io
