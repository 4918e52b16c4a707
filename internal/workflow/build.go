package workflow

import (
	"modelopt/internal/invoke"
	"modelopt/internal/optcfg"
)

// invokeBuilder maps a resolved option set onto a driver command line.
func invokeBuilder(binary string, args *optcfg.OptionSet) *invoke.Builder {
	b := invoke.New(binary, args)
	b.AddFlagIfPresent("--verbose", "verbose")
	for _, name := range args.Names() {
		if reservedOption(name) || !args.Has(name) {
			continue
		}
		values := args.Values(name)
		if len(values) == 1 && booleanTrue(values[0]) {
			b.AddFlagIfPresent("--"+name, name)
			continue
		}
		// Accumulated options repeat once per collected value.
		for _, value := range values {
			b.AddOptionWithValues("--"+name, value)
		}
	}
	return b
}
