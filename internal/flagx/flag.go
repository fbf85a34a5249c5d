// Package flagx lets several packages share os.Args: each one extracts only
// the flags it owns before handing them to its own flag.FlagSet.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// Owned lists the flags a caller is interested in. Value flags may consume
// the following argument; Bool flags never do.
type Owned struct {
	Value []string
	Bool  []string
}

// FilterArgs keeps only the value flags named in allowedFlags (and their
// values). It is Filter with no boolean flags.
func FilterArgs(args []string, allowedFlags []string) []string {
	return Filter(args, Owned{Value: allowedFlags})
}

// Filter returns the subset of args that belongs to owned, preserving order.
//
// Supported forms are "-f value", "-f=value" and, for boolean flags, a bare
// "-f". A token starting with '-' is never taken as a value.
func Filter(args []string, owned Owned) []string {
	value := toSet(owned.Value)
	boolean := toSet(owned.Bool)

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := value[name]; ok {
				filtered = append(filtered, arg)
			} else if _, ok := boolean[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := boolean[arg]; ok {
			filtered = append(filtered, arg)
			continue
		}

		if _, ok := value[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// ConfigPath returns the JSON config file path passed with -c or -config in
// args, or "" when neither is present. The last occurrence wins.
func ConfigPath(args []string) string {
	var config string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return config
}

// JsonConfigFlags is ConfigPath applied to the process arguments.
func JsonConfigFlags() string {
	return ConfigPath(os.Args[1:])
}
