package search_test

import (
	"context"
	"fmt"

	"github.com/rectfree/rectfree/pkg/search"
)

func ExampleRunner_Run() {
	runner, err := search.New(search.Options{Rows: 2, Cols: 2, Colors: 2, Seed: 1})
	if err != nil {
		fmt.Println(err)
		return
	}

	res, err := runner.Run(context.Background())
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("status:", res.Status)
	fmt.Println("violations:", len(res.Violations))
	// Output:
	// status: converged
	// violations: 0
}
