package handler

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
)

func (c *Console) flagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(c.Err)
	return fs
}

// idArg parses the single positional record id of a command.
func idArg(command string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s: want exactly one id, got %d arguments", command, len(args))
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s: invalid id %q", command, args[0])
	}
	return id, nil
}
