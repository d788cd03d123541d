package cmd

import (
	"flag"

	"github.com/etnz/club"
	"github.com/etnz/club/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors completes the flag values with a known domain.
var flagPredictors = map[string]complete.Predictor{
	"v":          predict.Set{"combined", "phronesis", "flagship"},
	"p":          predict.Set{"phronesis", "flagship"},
	"t":          predict.Set{"deposit", "withdrawal", "buy", "sell", "dividend"},
	"scenario":   scenarios(),
	"o":          predict.Files("*.csv"),
	"store":      predict.Set{"file", "sqlite", "redis"},
	"store-path": predict.Files("*"),
	"env-file":   predict.Files("*"),
	"log-level":  predict.Set{"debug", "info", "warn", "error"},
}

func scenarios() predict.Set {
	var s predict.Set
	for _, sc := range club.Scenarios {
		s = append(s, string(sc))
	}
	return s
}

// flags returns the completion of the flags of f.
func flags(f *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if p, ok := flagPredictors[fl.Name]; ok {
			m[fl.Name] = p
			return
		}
		m[fl.Name] = predict.Something
	})
	return m
}

// Completion returns the shell completion of the commands registered in c.
func Completion(c *subcommands.Commander, global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flags(global),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(f)
		sub := &complete.Command{Flags: flags(f)}
		switch cmd.Name() {
		case "export":
			sub.Args = predict.Set(datasets)
		case "topic":
			if topics, err := docs.GetAllTopics(); err == nil {
				sub.Args = predict.Set(topics)
			}
		case "advise":
			sub.Args = predict.Set{"market", "stock", "risk", "yield"}
		}
		root.Sub[cmd.Name()] = sub
	})
	return root
}

// IsRegistered returns true if name is a command of c.
func IsRegistered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		found = found || cmd.Name() == name
	})
	return found
}
