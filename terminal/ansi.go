// @focus: #terminal { ansi }
package terminal

// Pre-allocated ANSI sequences
var (
	csiSGR0 = []byte("\x1b[0m")

	// Alternate screen set/reset (mode 1049). The plain CSI form, not the DEC
	// private ESC[?1049h, is required for compatibility; keep these bytes.
	csiAltScreenEnter = []byte("\x1b[1049h")
	csiAltScreenExit  = []byte("\x1b[1049l")
)

// Exported forms for renderers that build lines as strings
const (
	SeqReverse = "\x1b[7m"
	SeqReset   = "\x1b[0m"
	SeqClear   = "\x1b[2J\x1b[1;1H"
	SeqBell    = "\a"
)
