package nftjson

// Batch accumulates commands for a single atomic apply. Items keep their
// insertion order; nft executes them top to bottom in one transaction.
//
// A Batch is not safe for concurrent use. After ToRuleset the batch is
// sealed and further appends panic.
type Batch struct {
	items []Item
	done  bool
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

func (b *Batch) append(items ...Item) {
	if b.done {
		panic("nftjson: append to finalized batch")
	}
	b.items = append(b.items, items...)
}

// Add appends an add command for the given ruleset element.
func (b *Batch) Add(obj ListObject) {
	b.append(Add{Object: obj})
}

// Delete appends a delete command for the given ruleset element.
func (b *Batch) Delete(obj ListObject) {
	b.append(Delete{Object: obj})
}

// AddCmd appends an arbitrary command.
func (b *Batch) AddCmd(cmd Command) {
	b.append(cmd)
}

// AddObject appends a bare ruleset element, as found in nft output.
func (b *Batch) AddObject(obj ListObject) {
	b.append(obj)
}

// AddAll appends a mix of commands and bare elements in order.
func (b *Batch) AddAll(items ...Item) {
	b.append(items...)
}

// Len reports the number of accumulated items.
func (b *Batch) Len() int {
	return len(b.items)
}

// ToRuleset seals the batch and returns the document to apply.
func (b *Batch) ToRuleset() *Ruleset {
	b.done = true
	return &Ruleset{Items: b.items}
}
