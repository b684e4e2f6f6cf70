package cmd

import (
	"maps"

	"github.com/etnz/costbasis/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	csv := predict.Files("*.csv")
	ledger := func(extra map[string]complete.Predictor) map[string]complete.Predictor {
		flags := map[string]complete.Predictor{
			"f": csv,
			"t": predict.Something,
			"j": predict.Something,
			"q": predict.Nothing,
		}
		maps.Copy(flags, extra)
		return flags
	}

	topics, _ := docs.All()

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"gains": {Flags: ledger(map[string]complete.Predictor{"o": csv, "u": csv, "p": csv})},
			"check": {Flags: ledger(nil)},
			"query": {Flags: ledger(nil), Args: predict.Something},
			"topic": {Args: predict.Set(topics)},
			"help":  {},
		},
	}
}
