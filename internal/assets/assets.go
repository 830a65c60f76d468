// Package assets holds the default statistics snapshot shipped in the
// binary. It is served at /data.json when no DATA_FILE is configured.
package assets

import _ "embed"

//go:embed data.json
var Snapshot []byte
