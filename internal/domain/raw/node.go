// Package raw wraps untyped search backend payloads.
//
// A Node never fails: walking into a missing key, an index past the end or a
// value of the wrong type yields an absent Node, and every read returns an
// Option so call sites decide the default explicitly.
package raw

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Node is a read-only view of one position in a JSON document.
type Node struct {
	r gjson.Result
}

// Parse wraps a JSON payload. Invalid JSON yields an absent Node.
func Parse(data []byte) Node {
	if !gjson.ValidBytes(data) {
		return Node{}
	}
	return Node{r: gjson.ParseBytes(data)}
}

// ParseString is Parse for string payloads.
func ParseString(s string) Node {
	return Parse([]byte(s))
}

// Get walks object keys one level at a time.
// Keys are literal: dots and wildcards carry no path meaning.
func (n Node) Get(keys ...string) Node {
	cur := n.r
	for _, k := range keys {
		if !cur.IsObject() {
			return Node{}
		}
		cur = cur.Get(gjson.Escape(k))
	}
	return Node{r: cur}
}

// Index returns the i-th element of an array node.
func (n Node) Index(i int) Node {
	if !n.r.IsArray() || i < 0 {
		return Node{}
	}
	items := n.r.Array()
	if i >= len(items) {
		return Node{}
	}
	return Node{r: items[i]}
}

// Exists reports whether the position is present in the document, null included.
func (n Node) Exists() bool { return n.r.Exists() }

// Defined reports whether the position holds a non-null value.
func (n Node) Defined() bool { return n.r.Exists() && n.r.Type != gjson.Null }

// IsArray reports whether the node is a JSON array.
func (n Node) IsArray() bool { return n.r.IsArray() }

// IsObject reports whether the node is a JSON object.
func (n Node) IsObject() bool { return n.r.IsObject() }

// Items returns the array elements, or an empty slice for anything that is
// not an array. Element shapes are not checked.
func (n Node) Items() []Node {
	if !n.r.IsArray() {
		return []Node{}
	}
	arr := n.r.Array()
	out := make([]Node, len(arr))
	for i, v := range arr {
		out[i] = Node{r: v}
	}
	return out
}

// Value returns the display string of a defined node.
// Strings are returned as-is, numbers in their shortest decimal form,
// booleans as true/false and objects or arrays as their JSON text.
func (n Node) Value() Option[string] {
	if !n.Defined() {
		return None[string]()
	}
	switch n.r.Type {
	case gjson.String:
		return Some(n.r.Str)
	case gjson.Number:
		return Some(FormatNumber(n.r.Num))
	case gjson.True:
		return Some("true")
	case gjson.False:
		return Some("false")
	default:
		return Some(n.r.Raw)
	}
}

// String coerces the node to text: absent or null becomes "".
func (n Node) String() string {
	return n.Value().OrElse("")
}

// Number returns the value only when the node is a JSON number.
func (n Node) Number() Option[float64] {
	if n.r.Type != gjson.Number {
		return None[float64]()
	}
	return Some(n.r.Num)
}

// Raw returns the JSON text of the node, "" when absent.
func (n Node) Raw() string { return n.r.Raw }

// FormatNumber renders a float the way a browser prints a number:
// shortest round-trip digits, exponent form outside [1e-6, 1e21).
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[0]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + string(sign) + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
