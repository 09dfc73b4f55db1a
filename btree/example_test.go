package btree_test

import (
	"fmt"

	"github.com/vchandela/btree/btree"
)

func Example() {
	tr := btree.New[int](btree.WithDegree(2))
	for k := 1; k <= 6; k++ {
		if _, err := tr.Insert(k); err != nil {
			panic(err)
		}
	}
	fmt.Println(tr)

	_, found := tr.Search(4)
	fmt.Println(found)

	tr.Delete(2)
	fmt.Println(tr)
	// Output:
	// [[1] 2 [3] 4 [5 6]]
	// true
	// [[1 3] 4 [5 6]]
}
