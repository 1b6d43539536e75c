package hooks

import "strings"

// Args are the name:value arguments Taskwarrior passes to every hook, e.g.
//
//	api:2 args:task 1 done command:done rc:/home/u/.taskrc data:/home/u/.task version:2.6.2
type Args struct {
	API     string
	Args    string
	Command string
	RC      string
	Data    string
	Version string
}

// ParseArgs extracts the known hook arguments. Anything else is ignored.
func ParseArgs(argv []string) Args {
	var a Args
	for _, arg := range argv {
		name, value, ok := strings.Cut(arg, ":")
		if !ok {
			continue
		}
		switch name {
		case "api":
			a.API = value
		case "args":
			a.Args = value
		case "command":
			a.Command = value
		case "rc":
			a.RC = value
		case "data":
			a.Data = value
		case "version":
			a.Version = value
		}
	}
	return a
}
