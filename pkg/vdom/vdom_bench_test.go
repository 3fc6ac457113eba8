package vdom

import (
	"fmt"
	"testing"
)

func createList(n int, label string) Node {
	items := make([]Node, n)
	for i := 0; i < n; i++ {
		items[i] = Element("li", []Attribute{Attr("class", "item"), Attr("data-i", i)},
			Text(fmt.Sprintf("%s %d", label, i)),
		)
	}
	return Element("ul", nil, items...)
}

func createDeepTree(depth int) Node {
	if depth == 0 {
		return Text("leaf")
	}
	return Element("div", []Attribute{Attr("data-depth", depth)},
		createDeepTree(depth-1),
		createDeepTree(depth-1),
	)
}

func BenchmarkDiff(b *testing.B) {
	b.Run("identical 100", func(b *testing.B) {
		prev, next := createList(100, "a"), createList(100, "a")
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = Diff(prev, next)
		}
	})

	b.Run("all text changed 100", func(b *testing.B) {
		prev, next := createList(100, "a"), createList(100, "b")
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = Diff(prev, next)
		}
	})

	b.Run("grow 100 to 200", func(b *testing.B) {
		prev, next := createList(100, "a"), createList(200, "a")
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = Diff(prev, next)
		}
	})

	b.Run("deep tree depth 10", func(b *testing.B) {
		prev, next := createDeepTree(10), createDeepTree(10)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = Diff(prev, next)
		}
	})
}

func BenchmarkApply(b *testing.B) {
	prev, next := createList(100, "a"), createList(100, "b")
	patches := Diff(prev, next)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		host := newMemHost(prev)
		b.StartTimer()
		if err := Apply(host, patches); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSize(b *testing.B) {
	tree := createDeepTree(12)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Size(tree)
	}
}
