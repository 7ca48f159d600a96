package models

// Condition is one node of a category-rule condition tree. A node is either a
// logical combinator (And/Or populated) or a leaf comparing a transaction field.
// Leaf fields: "description", "amount", "account". Ops: equals, contains,
// gt, gte, lt, lte, in.
type Condition struct {
	Field string      `json:"field,omitempty"`
	Op    string      `json:"op,omitempty"`
	Value interface{} `json:"value,omitempty"`
	And   []Condition `json:"and,omitempty"`
	Or    []Condition `json:"or,omitempty"`
}
