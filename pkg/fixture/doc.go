// Package fixture loads virtual trees from files and converts patch lists
// to JSON records for tooling.
//
// Trees can be written as HTML, or as JSON or YAML documents that follow
// the Tree schema:
//
//	tag: ul
//	attrs:
//	  - {name: class, value: todo}
//	on: [click]
//	children:
//	  - {tag: li, children: [first]}
//	  - second
//
// A bare string anywhere a node is expected is a text node.
package fixture
