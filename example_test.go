package json0diff_test

import (
	"encoding/json"
	"fmt"

	"github.com/agentflare-ai/go-json0diff"
)

func ExampleDiff() {
	before := map[string]any{"title": "draft", "views": 1, "tags": []any{"a", "b"}}
	after := map[string]any{"title": "drafts", "views": 3, "tags": []any{"a"}}

	ops, err := json0diff.Diff(before, after)
	if err != nil {
		panic(err)
	}
	out, _ := json.Marshal(ops)
	fmt.Println(string(out))

	doc, _ := json0diff.Apply(before, ops)
	res, _ := json.Marshal(doc)
	fmt.Println(string(res))
	// Output:
	// [{"p":["tags",1],"ld":"b"},{"p":["title"],"t":"text0","o":[{"p":5,"i":"s"}]},{"p":["views"],"na":2}]
	// {"tags":["a"],"title":"drafts","views":3}
}
