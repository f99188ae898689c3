package models

// Dataset holds the three record collections in insertion order.
type Dataset struct {
	Groups      []Group
	Memberships []Membership
	Items       []WishlistItem
}

// Clone returns a copy that shares no backing arrays with d.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return &Dataset{}
	}
	return &Dataset{
		Groups:      append([]Group(nil), d.Groups...),
		Memberships: append([]Membership(nil), d.Memberships...),
		Items:       append([]WishlistItem(nil), d.Items...),
	}
}

// Empty reports whether all three collections are empty.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Groups)+len(d.Memberships)+len(d.Items) == 0
}

// FindGroup returns the group with the given id.
func (d *Dataset) FindGroup(id string) (Group, bool) {
	for _, g := range d.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}
