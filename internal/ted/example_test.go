package ted_test

import (
	"context"
	"fmt"

	"github.com/breaklikeafish/UD-TED/internal/ted"
)

func ExampleDistance() {
	// "Dogs bark" against "Dogs bark loudly"
	src, _ := ted.BuildForest(
		ted.NewNode(ted.NewLabel("bark", "root", "VERB"),
			ted.NewNode(ted.NewLabel("Dogs", "nsubj", "NOUN"))),
	)
	dst, _ := ted.BuildForest(
		ted.NewNode(ted.NewLabel("bark", "root", "VERB"),
			ted.NewNode(ted.NewLabel("Dogs", "nsubj", "NOUN")),
			ted.NewNode(ted.NewLabel("loudly", "advmod", "ADV"))),
	)

	result, err := ted.Distance(context.Background(), src, dst, ted.CostModelFor(true, false))
	if err != nil {
		fmt.Println(err)
		return
	}

	matched, inserted := 0, 0
	for _, p := range result.Mapping {
		switch {
		case p.IsSubstitution():
			matched++
		case p.Source == ted.Gap:
			inserted++
		}
	}
	fmt.Printf("distance: %g\n", result.Distance)
	fmt.Printf("matched: %d, inserted: %d\n", matched, inserted)
	// Output:
	// distance: 1
	// matched: 2, inserted: 1
}

func ExampleCoarseRelation() {
	fmt.Println(ted.CoarseRelation("nsubj:pass"))
	fmt.Println(ted.CoarseRelation("obj"))
	// Output:
	// nsubj
	// obj
}
