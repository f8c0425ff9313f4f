// Package errors provides structured error handling for the emberquest engine.
//
// Every engine contract returns errors from this package so the UI layer can
// inspect the exact refusal and re-prompt without corrupting game state:
//   - Structured errors with codes, messages, and metadata
//   - Game rule codes (WrongClass, LevelTooLow, AlreadyLearned, ...) so a
//     failed action is never a generic failure
//   - Error context preservation through wrapping
//   - Validation error helpers for dependency wiring
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFoundf("skill %q not found", skillID)
//	err := errors.LevelTooLowf("requires level %d", req.Level)
//
// Adding metadata:
//
//	err := errors.NotFound("monster not in encounter").
//	    WithMeta("monster_id", monsterID)
//
// Wrapping errors:
//
//	if err := repo.Load(ctx, slot); err != nil {
//	    return errors.Wrap(err, "failed to load save slot")
//	}
//
// # Error Checking
//
//	if errors.IsOnCooldown(err) {
//	    // Re-prompt; the encounter is still in progress.
//	}
//
//	code := errors.GetCode(err)
//	if code.Recoverable() {
//	    // Render and continue.
//	}
//
// # Layer Guidelines
//
// Repository layer returns NotFound/AlreadyExists/Internal with ids in
// metadata. Rule engines return the game rule codes above. The session and
// combat orchestrators validate inputs (InvalidArgument) and reserve
// FailedPrecondition for broken invariants such as resolving a level-up
// event twice.
package errors
