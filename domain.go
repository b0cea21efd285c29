package tendril

// Tool is an interaction tool that can be activated against a domain.
// The tool value itself is the identity under which execution transactions
// are opened and closed.
type Tool interface {
	// Activate wires the tool into the domain's viewers and scenes.
	Activate(d *Domain) error
	// Deactivate releases every filter and listener Activate acquired.
	Deactivate()
}

// TransactionListener observes execution transaction boundaries, typically
// to wrap each complete gesture in one undoable step.
type TransactionListener interface {
	TransactionOpened(owner Tool)
	TransactionClosed(owner Tool)
}

// Domain owns the viewers of one editing context and coordinates execution
// transactions for the tools operating on them.
//
// Transactions are reentrant per owner identity: nested opens by the same
// owner stack, and the listener fires only on the outermost open and close.
// A close with no matching open is tolerated — tools are expected to enforce
// the at-most-one-open invariant themselves, and the abort path may race a
// normal close that was legitimately skipped.
type Domain struct {
	viewers  []*Viewer
	registry *PolicyRegistry
	resolver PolicyResolver

	transactions map[Tool]int
	txListener   TransactionListener
}

// NewDomain creates a domain with an empty policy registry as its resolver.
func NewDomain() *Domain {
	reg := NewPolicyRegistry()
	return &Domain{
		registry:     reg,
		resolver:     reg,
		transactions: make(map[Tool]int),
	}
}

// AddViewer registers a viewer with the domain.
func (d *Domain) AddViewer(v *Viewer) {
	d.viewers = append(d.viewers, v)
}

// Viewers returns the domain's viewers. The returned slice MUST NOT be
// mutated.
func (d *Domain) Viewers() []*Viewer {
	return d.viewers
}

// ViewerOf resolves the viewer containing the given node by walking up the
// hierarchy until a viewer root (or pannable canvas) is found. Returns nil
// when the node is not part of any registered viewer, which happens when an
// interaction mutated the hierarchy out from under the caller.
func (d *Domain) ViewerOf(target *Node) *Viewer {
	for n := target; n != nil; n = n.Parent {
		for _, v := range d.viewers {
			if v.root == n {
				return v
			}
			if v.canvas != nil && v.canvas.node == n {
				return v
			}
		}
	}
	return nil
}

// Registry returns the domain's default policy registry. It is the active
// resolver unless SetResolver replaced it.
func (d *Domain) Registry() *PolicyRegistry {
	return d.registry
}

// Resolver returns the active policy resolver.
func (d *Domain) Resolver() PolicyResolver {
	return d.resolver
}

// SetResolver replaces the active policy resolver.
func (d *Domain) SetResolver(r PolicyResolver) {
	d.resolver = r
}

// SetTransactionListener sets the observer for transaction boundaries.
func (d *Domain) SetTransactionListener(l TransactionListener) {
	d.txListener = l
}

// OpenTransaction opens (or re-enters) the execution transaction for owner.
func (d *Domain) OpenTransaction(owner Tool) {
	d.transactions[owner]++
	if d.transactions[owner] == 1 {
		debugf("transaction opened by %T", owner)
		if d.txListener != nil {
			d.txListener.TransactionOpened(owner)
		}
	}
}

// CloseTransaction closes (or exits one level of) the execution transaction
// for owner. Closing with no open transaction is a tolerated no-op.
func (d *Domain) CloseTransaction(owner Tool) {
	count := d.transactions[owner]
	if count == 0 {
		debugf("transaction close with no open transaction by %T", owner)
		return
	}
	if count == 1 {
		delete(d.transactions, owner)
		debugf("transaction closed by %T", owner)
		if d.txListener != nil {
			d.txListener.TransactionClosed(owner)
		}
		return
	}
	d.transactions[owner] = count - 1
}

// InTransaction reports whether owner currently has an open transaction.
func (d *Domain) InTransaction(owner Tool) bool {
	return d.transactions[owner] > 0
}
