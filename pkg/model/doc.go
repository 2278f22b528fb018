// Package model defines the geometric input of the renderer: sampled edges
// and the classified feature report.
//
// Both are plain value data. Nothing in this package refers to pixels,
// canvases or views, so the same [Edge] slice and [Report] can be shared
// read-only by any number of concurrent view renders.
//
// # Inputs
//
// Edges come from a CAD kernel that samples each boundary curve of a solid
// into a 3D polyline. The kernel itself is outside this module; the
// [EdgeSampler] interface is the seam. [FileSampler] reads a JSON sidecar
// written by the kernel:
//
//	{"edges": [[[0,0,0],[10,0,0]], [[0,0,0],[0,0,5],[0,0,10]]]}
//
// The feature report comes from the feature analyzer:
//
//	{
//	  "cylinders": [{"id": "f1", "radius_mm": 5, "axis": "Z", "location": [0,0,10]}],
//	  "planes":    [{"id": "f2", "dims": [20,20], "normal": [0,0,1],
//	                 "face_type": "horizontal", "area_mm2": 400, "location": [0,0,20]}],
//	  "cones":     [],
//	  "bounding_box": {"x_mm": 10, "y_mm": 10, "z_mm": 20},
//	  "summary": "1 hole, 1 face"
//	}
//
// Use [ImportReport] and [ImportEdges] to load them from disk.
package model
