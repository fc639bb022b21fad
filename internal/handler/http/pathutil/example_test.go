package pathutil_test

import (
	"fmt"

	"technews/internal/handler/http/pathutil"
)

func ExampleNormalizePath() {
	fmt.Println(pathutil.NormalizePath("/api/articles/123/read"))
	fmt.Println(pathutil.NormalizePath("/api/articles/456/read"))
	fmt.Println(pathutil.NormalizePath("/api/articles"))

	// Output:
	// /api/articles/:id/read
	// /api/articles/:id/read
	// /api/articles
}
