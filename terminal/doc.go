// @focus: #sys { term }
// Package terminal owns a raw terminal session for the checklist editor.
//
// Features:
//   - Staged mode changes (canonical, echo, VMIN, alternate screen) applied in one commit
//   - Restoration of the attributes captured at construction on Close, exactly once
//   - Single-codepoint UTF-8 reads for keystroke decoding
//   - Crash-path reset through /dev/tty
//
// Attributes are read and written with termios ioctls, no terminfo lookups.
// Target environments: Linux, macOS, BSDs.
package terminal
