// Package scene defines the file format of a desktop: monitors, workspaces
// and their container trees.
//
// A scene is the input of `hyprtile layout`, `hyprtile preview` and the
// HTTP API. It is JSON (or TOML, picked by file extension):
//
//	{
//	  "monitors": [
//	    {"name": "main", "frame": {"x": 0, "y": 0, "width": 1920, "height": 1080},
//	     "visible": {"x": 0, "y": 25, "width": 1920, "height": 1055},
//	     "active_workspace": "1"}
//	  ],
//	  "workspaces": [
//	    {"name": "1", "monitor": "main",
//	     "root": {"type": "container", "layout": "tiles", "orientation": "h",
//	              "children": [
//	                {"type": "window", "id": 1, "title": "editor", "weight": 2},
//	                {"type": "window", "id": 2, "title": "terminal"}
//	              ]},
//	     "floating": [{"type": "window", "id": 3, "frame": {"x": 100, "y": 100, "width": 400, "height": 300}}]}
//	  ]
//	}
//
// [Build] turns a scene into live trees plus a [geometry.Simulator] seeded
// with the window frames the scene records. After layout passes, [NewReport]
// captures the rect every node was given.
package scene
