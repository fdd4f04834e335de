package creditcf

import "log"

// LogFatal logs a fatal message and terminates the process. The CORE
// accumulator and the loader never call this; only the CLI driver does,
// on usage errors, on errors the loader returns (malformed input, I/O
// failure) and on recovered domain-error panics (spec §7).
func LogFatal(msg string, args ...any) {
	if msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	log.Fatalf("<{[creditcf - FATAL!]}> "+msg, args...)
}

// LogWarning logs a recoverable-condition message, e.g. a defaulted field.
func LogWarning(msg string, args ...any) {
	if Config.GetLogLevel() > LogLevelWarning {
		return
	}
	if msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	log.Printf("[creditcf - Warning] "+msg, args...)
}

// LogDebug logs fine-grained diagnostics, e.g. per-loan accumulation.
func LogDebug(msg string, args ...any) {
	if Config.GetLogLevel() > LogLevelDebug {
		return
	}
	if msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	log.Printf("<creditcf - Debug> "+msg, args...)
}

// LogInfo logs a driver-level progress message.
func LogInfo(msg string, args ...any) {
	if Config.GetLogLevel() > LogLevelInfo {
		return
	}
	if msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	log.Printf("[creditcf - Info] "+msg, args...)
}
