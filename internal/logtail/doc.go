// Package logtail reads the end of the application log for display in the
// diagnostics view.
//
// Read keeps a ring buffer of the last maxLines lines, so memory stays
// bounded by the request rather than the file size, and returns them oldest
// first. Each line carries the level parsed from the slog text or JSON
// format so the UI can color warnings and errors:
//
//	lines, err := logtail.Read(cfg.LogFile, 8)
//	for _, l := range lines {
//		if l.Level >= slog.LevelWarn {
//			// highlight
//		}
//	}
//
// A log file that does not exist yet is not an error; Read returns no lines.
package logtail
