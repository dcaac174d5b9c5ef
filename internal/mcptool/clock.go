package mcptool

import "time"

// timeNow is swapped in tests for deterministic date parsing.
var timeNow = time.Now
