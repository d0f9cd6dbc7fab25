package message

// TraceValue is an optional, type-tagged annotation a decoder may attach to
// a trace node (e.g. the decoded opcode name, a string's printable form).
type TraceValue struct {
	Kind string
	Text string
}

// TraceNode is one recorded read: its byte span, whether it was a
// readahead peek, the reading function's name, any caller-supplied
// annotation, and the reads nested inside it.
type TraceNode struct {
	Start      int
	Length     int
	ReadAhead  bool
	Function   string
	Annotation string
	Value      *TraceValue
	Children   []*TraceNode
}

// Trace is an optional recursive read-tree sink. A nil *Trace is a
// zero-cost no-op: every method on it is safe to call and does nothing.
type Trace struct {
	root     TraceNode
	stack    []*TraceNode
	pending  string // annotation queued for the next push
}

// NewTrace returns an enabled trace sink rooted at an empty node.
func NewTrace() *Trace {
	t := &Trace{}
	t.stack = []*TraceNode{&t.root}
	return t
}

// Annotate queues a caller-supplied annotation to attach to the next
// pushed node.
func (t *Trace) Annotate(s string) {
	if t == nil {
		return
	}
	t.pending = s
}

// push starts a new trace node as a child of the current top of stack.
func (t *Trace) push(function string, start int, readahead bool) *TraceNode {
	if t == nil {
		return nil
	}
	n := &TraceNode{
		Start:      start,
		ReadAhead:  readahead,
		Function:   function,
		Annotation: t.pending,
	}
	t.pending = ""
	parent := t.stack[len(t.stack)-1]
	parent.Children = append(parent.Children, n)
	t.stack = append(t.stack, n)
	return n
}

// pop closes the current node, recording its final length.
func (t *Trace) pop(n *TraceNode, end int) {
	if t == nil || n == nil {
		return
	}
	n.Length = end - n.Start
	t.stack = t.stack[:len(t.stack)-1]
}

// setValue attaches a typed value to n.
func (t *Trace) setValue(n *TraceNode, kind, text string) {
	if t == nil || n == nil {
		return
	}
	n.Value = &TraceValue{Kind: kind, Text: text}
}

// Root returns the top-level synthetic node whose children are the
// top-level reads recorded by this trace.
func (t *Trace) Root() *TraceNode {
	if t == nil {
		return nil
	}
	return &t.root
}
