package keybind

import "github.com/wmcore/corewm/internal/wmerrors"

var errNoKeysym = wmerrors.New(wmerrors.CommandInvalid, "bindsym: no keysym in combo, only modifiers")
