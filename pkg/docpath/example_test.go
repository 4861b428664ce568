package docpath_test

import (
	"fmt"

	"github.com/matzehuels/jsonscope/pkg/docpath"
)

func ExamplePath_QueryExpression() {
	p := docpath.New("a", 0, "b c")
	fmt.Println(p.QueryExpression())
	// Output: $["a"][0]["b c"]
}

func ExampleParse() {
	p, err := docpath.Parse(`$['store']["book"][2]`)
	if err != nil {
		panic(err)
	}
	for _, s := range p {
		fmt.Println(s.IsIndex(), s)
	}
	// Output:
	// false store
	// false book
	// true 2
}
