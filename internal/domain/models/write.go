package models

// ForWrite copies of entities carry bare references, which is the only form
// the API accepts in request bodies.

// ForWrite returns p with bare references.
func (p Product) ForWrite() Product {
	p.Category = p.Category.Bare()
	p.Supplier = p.Supplier.Bare()
	return p
}

// ForWrite returns item with a bare product reference.
func (item ProductItem) ForWrite() ProductItem {
	item.Product = item.Product.Bare()
	return item
}

// ForWrite returns p with bare references, items included.
func (p Purchase) ForWrite() Purchase {
	p.Supplier = p.Supplier.Bare()
	items := make([]PurchaseItem, len(p.Items))
	for i, item := range p.Items {
		item.Product = item.Product.Bare()
		items[i] = item
	}
	p.Items = items
	return p
}

// ForWrite returns in with bare references, items included.
func (in Inward) ForWrite() Inward {
	in.Supplier = in.Supplier.Bare()
	items := make([]InwardItem, len(in.Items))
	for i, item := range in.Items {
		item.Product = item.Product.Bare()
		items[i] = item
	}
	in.Items = items
	return in
}

// ForWrite returns b with bare references, items included.
func (b Bill) ForWrite() Bill {
	b.Customer = b.Customer.Bare()
	items := make([]BillItem, len(b.Items))
	for i, item := range b.Items {
		item.Product = item.Product.Bare()
		items[i] = item
	}
	b.Items = items
	return b
}

// ForWrite returns r with bare references, items included.
func (r Rental) ForWrite() Rental {
	r.Customer = r.Customer.Bare()
	items := make([]RentalItem, len(r.Items))
	for i, item := range r.Items {
		item.Product = item.Product.Bare()
		item.ProductItem = item.ProductItem.Bare()
		items[i] = item
	}
	r.Items = items
	return r
}
