package otelauta

import _ "embed"

// License is the contents of the LICENSE file, so the GUI can show it in the
// about dialog.
//
//go:embed LICENSE
var License string
