package commands

// SetSleeper replaces the cooldown sleeper for testing.
func SetSleeper(command *OpenPRsCommand, sleeper Sleeper) {
	command.sleep = sleeper
}

// FirstLine exports firstLine for testing.
var FirstLine = firstLine //nolint:gochecknoglobals // test export
