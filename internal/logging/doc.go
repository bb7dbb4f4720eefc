// Package logging builds the slog loggers used by confit.
//
// Console output is either the compact colorized [Handler] or slog's JSON
// handler. [Open] can additionally tee every record into a JSON log file:
//
//	logger, closer, err := logging.Open(logging.Config{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//		File:   "/tmp/confit.log",
//	})
//	if err != nil {
//		return err
//	}
//	defer closer.Close()
//
// The text handler masks attribute values whose key looks sensitive
// ("api_token", "password") or whose value starts with a known token
// prefix. [Redact] and [IsSecretKey] expose the rule.
//
// Loggers travel through a context with [NewContext] and [FromContext].
// Tests use [ForTest]; library defaults use [NewDiscard].
package logging
